package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture enables verbose output into a buffer and restores state afterwards.
func capture(t *testing.T, enabled bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(enabled)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("listing %s", "Rice") }, "[DEBUG] listing Rice\n"},
		{"info", func() { Info("serving on %s", ":8080") }, "[INFO] serving on :8080\n"},
		{"warn", func() { Warn("watch failed") }, "[WARN] watch failed\n"},
		{"section", func() { Section("Dashboard") }, "\n=== Dashboard ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	Query("total_quantity", nil, 1, time.Millisecond)

	assert.Zero(t, buf.Len())
}

func TestQuery(t *testing.T) {
	buf := capture(t, true)

	Query("filtered_listings", []any{"Vegan", "Springfield"}, 2, 1500*time.Microsecond)

	assert.Equal(t, "[QUERY] filtered_listings(\"Vegan\", \"Springfield\") -> 2 rows in 1.5ms\n", buf.String())
}

func TestFormatParams(t *testing.T) {
	tests := []struct {
		name   string
		params []any
		want   string
	}{
		{"none", nil, ""},
		{"strings are quoted", []any{"Springfield", ""}, `"Springfield", ""`},
		{"numbers", []any{int64(3), 2.5}, "3, 2.5"},
		{"nil", []any{nil}, "NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatParams(tt.params))
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Debug("concurrent %d", i)
			IsVerbose()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, bytes.Count(buf.Bytes(), []byte("[DEBUG] concurrent")))
}
