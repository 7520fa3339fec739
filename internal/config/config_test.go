package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
url: https://example.atlassian.net
email: qa@example.com
token: secret
qmetry_api_key: qm-key
qmetry_project_id: "10001"
qmetry_project_key: QA
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.atlassian.net", cfg.URL)
	assert.Equal(t, "qa@example.com", cfg.Email)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "qm-key", cfg.QMetryAPIKey)
	assert.Equal(t, "10001", cfg.QMetryProjectID)
	assert.Equal(t, "QA", cfg.QMetryProjectKey)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
url: https://example.atlassian.net
email: qa@example.com
token: from-file
`)
	t.Setenv("JIRA_API_TOKEN", "from-env")
	t.Setenv("QMETRY_PROJECT_KEY", "ENVKEY")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, "ENVKEY", cfg.QMetryProjectKey)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("JIRA_URL", "https://env.atlassian.net")
	t.Setenv("JIRA_EMAIL", "env@example.com")
	t.Setenv("JIRA_API_TOKEN", "env-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.atlassian.net", cfg.URL)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing url",
			cfg:     Config{Email: "a@b.c", Token: "t"},
			wantErr: "URL is required",
		},
		{
			name:    "missing email",
			cfg:     Config{URL: "https://x", Token: "t"},
			wantErr: "email is required",
		},
		{
			name:    "missing token",
			cfg:     Config{URL: "https://x", Email: "a@b.c"},
			wantErr: "token is required",
		},
		{
			name: "complete",
			cfg:  Config{URL: "https://x", Email: "a@b.c", Token: "t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePublishRequiresQMetryFields(t *testing.T) {
	cfg := Config{URL: "https://x", Email: "a@b.c", Token: "t"}
	require.Error(t, cfg.ValidatePublish())

	cfg.QMetryAPIKey = "k"
	require.Error(t, cfg.ValidatePublish())

	cfg.QMetryProjectID = "10001"
	require.Error(t, cfg.ValidatePublish())

	cfg.QMetryProjectKey = "QA"
	assert.NoError(t, cfg.ValidatePublish())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	in := Config{
		URL:              "https://example.atlassian.net",
		Email:            "qa@example.com",
		Token:            "secret",
		QMetryAPIKey:     "qm-key",
		QMetryProjectID:  "10001",
		QMetryProjectKey: "QA",
	}
	require.NoError(t, Save(in, path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
