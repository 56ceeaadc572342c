package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionFromEnvironment(t *testing.T) {
	t.Setenv("APP_VERSION", "2.0.0-beta.1")
	assert.Equal(t, "2.0.0-beta.1", GetVersion())
}

func TestGetVersionFromLinker(t *testing.T) {
	t.Setenv("APP_VERSION", "")
	old := version
	version = "1.4.2"
	defer func() { version = old }()

	assert.Equal(t, "1.4.2", GetVersion())
}

func TestReadVersionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VERSION")

	assert.Equal(t, fallbackVersion, readVersionFile(path))

	assert.NoError(t, os.WriteFile(path, []byte("3.1.0\n"), 0644))
	assert.Equal(t, "3.1.0", readVersionFile(path))

	assert.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))
	assert.Equal(t, fallbackVersion, readVersionFile(path))
}
