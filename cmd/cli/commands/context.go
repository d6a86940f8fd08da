package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/clients/gmailclient"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/clients/sheetsclient"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
)

// AppContext holds the application dependencies shared across all commands.
// Google clients are created on first use so offline commands never authenticate.
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Recorder metrics.Recorder
	Ctx      context.Context

	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
}

// SheetsClient returns the Sheets client, running the OAuth flow if needed
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	oauthCfg, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing sheets client")
	a.sheetsClient, err = sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.Logger.Debug("Sheets client initialized successfully")

	return a.sheetsClient, nil
}

// GmailClient returns the Gmail client. It reuses the Sheets client's token.
func (a *AppContext) GmailClient() (*gmailclient.Client, error) {
	if a.gmailClient != nil {
		return a.gmailClient, nil
	}

	sheets, err := a.SheetsClient()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing gmail client")
	a.gmailClient, err = gmailclient.NewClient(a.Ctx, a.oauthCfg, sheets.Token(), a.Cfg.GmailUserID, a.Cfg.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	a.Logger.Debug("Gmail client initialized successfully")

	return a.gmailClient, nil
}

func (a *AppContext) oauthConfig() (*config.OAuthClientConfig, error) {
	if a.oauthCfg != nil {
		return a.oauthCfg, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	a.oauthCfg = oauthCfg
	return oauthCfg, nil
}
