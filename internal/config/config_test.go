package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	// 空の環境変数は未設定として扱われる
	for _, k := range keys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(k), "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := LoadWithPrecedence()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".taskquad", "tasks.json"), cfg.DataFile)
	assert.Equal(t, DefaultCelebrationURL, cfg.CelebrationURL)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.IsGitHubConfigured())
}

func TestSaveAndLoad(t *testing.T) {
	home := setHome(t)

	cfg := &Config{
		DataFile:      "/tmp/elsewhere.json",
		GitHubToken:   "ghp_abcdefgh1234",
		ProjectOwner:  "tkc",
		ProjectNumber: 3,
		NoColor:       true,
	}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(home, ".taskquad", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.json", loaded.DataFile)
	assert.Equal(t, "ghp_abcdefgh1234", loaded.GitHubToken)
	assert.Equal(t, "tkc", loaded.ProjectOwner)
	assert.Equal(t, 3, loaded.ProjectNumber)
	assert.True(t, loaded.NoColor)
	assert.True(t, loaded.IsGitHubConfigured())
	assert.NoError(t, loaded.ValidateGitHub())
}

func TestEnvOverridesFile(t *testing.T) {
	setHome(t)
	require.NoError(t, (&Config{ProjectOwner: "from-file", ProjectNumber: 1}).Save())

	t.Setenv("TASKQUAD_PROJECT_OWNER", "from-env")
	t.Setenv("TASKQUAD_PROJECT_NUMBER", "7")
	t.Setenv("TASKQUAD_NO_COLOR", "true")

	cfg, err := LoadWithPrecedence()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ProjectOwner)
	assert.Equal(t, 7, cfg.ProjectNumber)
	assert.True(t, cfg.NoColor)

	// Load は環境変数を見ない
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ProjectOwner)
	assert.Equal(t, 1, cfg.ProjectNumber)
}

func TestLoadInvalidYAML(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".taskquad")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data_file: [unterminated"), 0600))

	_, err := LoadWithPrecedence()
	assert.Error(t, err)
}

func TestValidateGitHub(t *testing.T) {
	err := (&Config{}).ValidateGitHub()
	assert.ErrorContains(t, err, "taskquad github login")

	err = (&Config{GitHubToken: "t"}).ValidateGitHub()
	assert.ErrorContains(t, err, "taskquad github project select")
}
