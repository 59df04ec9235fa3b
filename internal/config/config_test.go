package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultRequestTimeoutSeconds, cfg.RequestTimeoutSeconds)
	assert.Equal(t, DefaultScoreThreshold, cfg.ScoreThreshold)
	assert.Equal(t, DefaultMaxJobs, cfg.MaxJobs)
}

func TestLoadFromFile(t *testing.T) {
	path := writeTemp(t, "config.json", `{
		"port": 9090,
		"score_threshold": 0.5,
		"location": "US",
		"use_browser": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 0.5, cfg.ScoreThreshold)
	assert.Equal(t, "US", cfg.Location)
	assert.True(t, cfg.UseBrowser)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeTemp(t, "config.json", `{"gemini_api_key": "from-file"}`)
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GeminiAPIKey)
	assert.Equal(t, "secret", cfg.JWTSecret)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/does/not/exist.json")
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"port too large", Config{Port: 70000, RequestTimeoutSeconds: 45, MaxJobs: 50}},
		{"threshold above one", Config{Port: 8080, RequestTimeoutSeconds: 45, MaxJobs: 50, ScoreThreshold: 1.5}},
		{"zero max jobs", Config{Port: 8080, RequestTimeoutSeconds: 45}},
		{"missing boards file", Config{Port: 8080, RequestTimeoutSeconds: 45, MaxJobs: 50, BoardsFile: "/nope.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestParseBoards(t *testing.T) {
	boards, err := ParseBoards([]byte(`{
		"greenhouse": ["stripe", "airbnb"],
		"lever": ["netflix"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"stripe", "airbnb"}, boards.Greenhouse)
	assert.Equal(t, []string{"netflix"}, boards.Lever)
	assert.False(t, boards.Empty())
}

func TestParseBoardsRejectsUnknownVendor(t *testing.T) {
	_, err := ParseBoards([]byte(`{"workable": ["acme"]}`))
	assert.Error(t, err)
}

func TestParseBoardsRejectsNonStringSlug(t *testing.T) {
	_, err := ParseBoards([]byte(`{"greenhouse": [42]}`))
	assert.Error(t, err)
}

func TestBoardsEmpty(t *testing.T) {
	assert.True(t, (&Boards{}).Empty())
	assert.True(t, (*Boards)(nil).Empty())
}

func TestLoadBoardsFromFile(t *testing.T) {
	path := writeTemp(t, "boards.json", `{"ashby": ["org-1"]}`)
	boards, err := LoadBoards(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"org-1"}, boards.Ashby)
}
