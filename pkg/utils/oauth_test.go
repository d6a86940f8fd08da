package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
)

func TestMissingScopes(t *testing.T) {
	required := RequiredScopes()

	assert.Empty(t, MissingScopes(ScopeSheets+" "+ScopeGmailSend+" openid", required))
	assert.Equal(t, []string{ScopeGmailSend}, MissingScopes(ScopeSheets, required))
	assert.Equal(t, required, MissingScopes("", required))
}

func TestGetOAuthConfig(t *testing.T) {
	cfg := &config.OAuthClientConfig{
		Installed: &config.OAuthClient{
			ClientID:     "client-id.apps.googleusercontent.com",
			ProjectID:    "dispatch",
			AuthURI:      "https://accounts.google.com/o/oauth2/auth",
			TokenURI:     "https://oauth2.googleapis.com/token",
			ClientSecret: "secret",
			RedirectURIs: []string{"http://localhost"},
		},
	}

	oauthConfig, err := GetOAuthConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "client-id.apps.googleusercontent.com", oauthConfig.ClientID)
	assert.Equal(t, RequiredScopes(), oauthConfig.Scopes)
	assert.Equal(t, "http://localhost:3000/oauth/callback", oauthConfig.RedirectURL)
}

func TestTokenFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Nothing stored yet
	token, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, token)

	stored := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveTokenToFile("test", stored))

	info, err := os.Stat(filepath.Join(home, tokenDirName, "token-test.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenFilePerms), info.Mode().Perm())

	loaded, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, stored.Expiry.Equal(loaded.Expiry))

	// Tokens are per environment
	other, err := LoadTokenFromFile("prod")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, DeleteTokenFile("test"))
	require.NoError(t, DeleteTokenFile("test"))
	gone, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLoadTokenFromFile_Corrupt(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, tokenDirName)
	require.NoError(t, os.MkdirAll(dir, tokenDirPerms))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token-test.json"), []byte("{not json"), tokenFilePerms))

	_, err := LoadTokenFromFile("test")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token file")
}
