package database_test

import (
	"os"
	"sync"
	"testing"

	"github.com/mdouchement/pantry/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectorMemoizesConnection(t *testing.T) {
	connector := database.NewConnector(tempdb(t))
	defer connector.Close()

	first, err := connector.Connect()
	require.NoError(t, err)
	require.NotNil(t, first)

	again, err := connector.Connect()
	require.NoError(t, err)
	assert.True(t, first == again, "expected the same connection handle")
}

func TestConnectorConcurrentFirstUse(t *testing.T) {
	connector := database.NewConnector(tempdb(t))
	defer connector.Close()

	// bbolt takes an exclusive file lock so racing opens would not all succeed.
	const concurrency = 16
	clients := make([]database.Client, concurrency)
	errs := make([]error, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = connector.Connect()
		}(i)
	}
	wg.Wait()

	for i := 0; i < concurrency; i++ {
		require.NoError(t, errs[i])
		assert.True(t, clients[i] == clients[0], "expected every caller to share the handle")
	}
}

func TestConnectorWithoutConfiguration(t *testing.T) {
	connector := database.NewConnector("")

	_, err := connector.Connect()
	assert.Equal(t, database.ErrNoDatabaseConfigured, err)

	assert.NoError(t, connector.Close())
}

func tempdb(t *testing.T) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "pantry.*.db")
	require.NoError(t, err)
	filename := tmpfile.Name()
	tmpfile.Close()
	t.Cleanup(func() {
		os.RemoveAll(filename)
	})

	return filename
}
