package gmailclient

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/utils"
)

// Client wraps the Gmail API client
type Client struct {
	service *gmail.Service
	userID  string
	from    string
	limiter *rate.Limiter
}

// NewClient creates a new Gmail client using an existing OAuth token
// The token should already contain all necessary scopes (sheets, gmail)
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, userID, from string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	if userID == "" {
		userID = "me"
	}

	return &Client{
		service: service,
		userID:  userID,
		from:    from,
		limiter: newLimiter(),
	}, nil
}
