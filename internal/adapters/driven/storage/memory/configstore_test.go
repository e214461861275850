package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"server.addr": "0.0.0.0:9000"},
		map[string]any{"watch.enabled": false, "server.addr": "127.0.0.1:9001"},
	)

	assert.Equal(t, "127.0.0.1:9001", store.GetString("server.addr"))
	_, ok := store.Get("watch.enabled")
	assert.True(t, ok)
	assert.False(t, store.GetBool("watch.enabled"))
	assert.Equal(t, 0, store.Saves())
}

func TestConfigStore_Set_CountsSaves(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("storage.path", "/tmp/a.db"))
	require.NoError(t, store.Set("storage.path", "/tmp/b.db"))
	require.NoError(t, store.Save())

	assert.Equal(t, "/tmp/b.db", store.GetString("storage.path"))
	assert.Equal(t, 3, store.Saves())
}

func TestConfigStore_FailWith(t *testing.T) {
	store := NewConfigStore()
	boom := errors.New("disk full")

	store.FailWith(boom)
	assert.ErrorIs(t, store.Set("server.addr", ":1"), boom)
	_, ok := store.Get("server.addr")
	assert.False(t, ok)

	store.FailWith(nil)
	assert.NoError(t, store.Set("server.addr", ":1"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":     "value",
		"int":     42,
		"int64":   int64(7),
		"float":   float64(3),
		"bool":    true,
		"strings": []string{"a", "b"},
		"anys":    []any{"c", 1, "d"},
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int"))
	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 7, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("missing"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strings"))
	assert.Equal(t, []string{"c", "d"}, store.GetStringSlice("anys"))
	assert.Nil(t, store.GetStringSlice("str"))
}

func TestConfigStore_LoadIsNoOp(t *testing.T) {
	store := NewConfigStore(map[string]any{"k": "v"})
	require.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, store.Saves())
}
