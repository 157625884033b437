package wire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism-ai/prism/internal/config"
	"github.com/prism-ai/prism/internal/logger"
)

func TestOpenLogFile(t *testing.T) {
	t.Run("opens a writable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prism.log")
		w := openLogFile(path)

		f, ok := w.(*os.File)
		require.True(t, ok)
		defer f.Close()

		_, err := w.Write([]byte("entry\n"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "entry\n", string(data))
	})

	t.Run("unopenable path falls back to stdout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "prism.log")
		w := openLogFile(path)
		assert.Equal(t, os.Stdout, w)
	})
}

func TestProvideLogWriter(t *testing.T) {
	tests := []struct {
		output string
		want   *os.File
	}{
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
		{"", os.Stdout},
		{"syslog", os.Stdout},
	}

	for _, tt := range tests {
		t.Run("output "+tt.output, func(t *testing.T) {
			cfg := &config.Config{Logging: logger.Config{Output: tt.output}}
			assert.Equal(t, tt.want, provideLogWriter(cfg))
		})
	}
}
