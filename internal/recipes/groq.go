// Package recipes turns a pantry inventory into recipe suggestions through a
// remote chat-completion API.
package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

const (
	// DefaultEndpoint is the Groq chat-completions endpoint.
	DefaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "llama3-8b-8192"

	maxTokens = 500

	prompt = `Act as a professional chef creating recipes for a smart pantry app.
Ingredients available: %s
Dietary restrictions/preferences: %s

Please provide creative recipes that:
1. Use the available ingredients
2. Are clear and concise
3. Include a brief cooking method
4. Consider any specified dietary restrictions

Generate 3 unique recipe suggestions.`
)

type (
	// A Client generates recipe suggestions for an inventory.
	Client interface {
		// Generate returns recipe suggestions for the given inventory and
		// optional dietary preferences.
		Generate(ctx context.Context, inventory []string, preferences string) ([]string, error)
	}

	// A Groq is a Client backed by the Groq chat-completions API.
	Groq struct {
		endpoint string
		apikey   string
		model    string
		client   *http.Client
	}

	// An Option configures a Groq client.
	Option func(*Groq)
)

// Endpoint overrides the API endpoint.
func Endpoint(url string) Option {
	return func(g *Groq) {
		g.endpoint = url
	}
}

// Model overrides the completion model.
func Model(model string) Option {
	return func(g *Groq) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGroq returns a new Groq client.
func NewGroq(apikey string, opts ...Option) *Groq {
	g := &Groq{
		endpoint: DefaultEndpoint,
		apikey:   apikey,
		model:    DefaultModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements Client.
// The completion content is split into its non-empty lines.
func (g *Groq) Generate(ctx context.Context, inventory []string, preferences string) ([]string, error) {
	if preferences == "" {
		preferences = "None"
	}

	payload, err := json.Marshal(map[string]interface{}{
		"model":      g.model,
		"max_tokens": maxTokens,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": fmt.Sprintf(prompt, strings.Join(inventory, ", "), preferences),
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "could not build completion request")
	}
	req.Header.Set("Authorization", "Bearer "+g.apikey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach completion API")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read completion response")
	}

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("completion API answered %d", res.StatusCode)
	}

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse completion response")
	}

	choices := v.GetArray("choices")
	if len(choices) == 0 {
		return nil, errors.New("completion API returned no choices")
	}
	content := string(choices[0].GetStringBytes("message", "content"))

	recipes := make([]string, 0)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		recipes = append(recipes, line)
	}
	return recipes, nil
}
