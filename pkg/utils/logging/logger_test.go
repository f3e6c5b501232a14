package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	chdir(t, t.TempDir())

	logger, err := InitLogger("test", "warn")
	require.NoError(t, err)

	logger.Debug("file only")
	_ = logger.Sync()

	files, err := filepath.Glob(filepath.Join("logs", "test_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"file only"`)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := InitLogger("test", "loud")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
