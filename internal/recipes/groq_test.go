package recipes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdouchement/pantry/internal/recipes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqGenerate(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			return
		}
		assert.Equal(t, recipes.DefaultModel, payload.Model)
		assert.Equal(t, 500, payload.MaxTokens)
		if assert.Len(t, payload.Messages, 1) {
			assert.Equal(t, "user", payload.Messages[0].Role)
			assert.Contains(t, payload.Messages[0].Content, "Milk, Eggs")
			assert.Contains(t, payload.Messages[0].Content, "vegetarian")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"1. Soup\n\n2. Salad\n3. Pie"}}]}`))
	}))
	defer upstream.Close()

	client := recipes.NewGroq("test-key", recipes.Endpoint(upstream.URL))

	suggestions, err := client.Generate(context.Background(), []string{"Milk", "Eggs"}, "vegetarian")
	require.NoError(t, err)
	assert.Equal(t, []string{"1. Soup", "2. Salad", "3. Pie"}, suggestions)
}

func TestGroqGenerateDefaultPreferences(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			return
		}
		if assert.Len(t, payload.Messages, 1) {
			assert.Contains(t, payload.Messages[0].Content, "Dietary restrictions/preferences: None")
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"1. Soup"}}]}`))
	}))
	defer upstream.Close()

	client := recipes.NewGroq("test-key", recipes.Endpoint(upstream.URL))

	suggestions, err := client.Generate(context.Background(), []string{"Milk"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1. Soup"}, suggestions)
}

func TestGroqGenerateUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := recipes.NewGroq("test-key", recipes.Endpoint(upstream.URL))

	_, err := client.Generate(context.Background(), []string{"Milk"}, "")
	assert.EqualError(t, err, "completion API answered 429")
}

func TestGroqGenerateNoChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	client := recipes.NewGroq("test-key", recipes.Endpoint(upstream.URL))

	_, err := client.Generate(context.Background(), []string{"Milk"}, "")
	assert.EqualError(t, err, "completion API returned no choices")
}

func TestGroqGenerateUnreachable(t *testing.T) {
	client := recipes.NewGroq("test-key", recipes.Endpoint("http://127.0.0.1:1"))

	_, err := client.Generate(context.Background(), []string{"Milk"}, "")
	assert.Error(t, err)
}
