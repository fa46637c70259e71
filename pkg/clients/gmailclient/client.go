package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/troop900/treelot/internal/config"
	"github.com/troop900/treelot/pkg/utils"
)

// Client wraps the Gmail API client used to send schedule announcements and
// signup confirmations. It implements services.NotificationSender.
type Client struct {
	service      *gmail.Service
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client, running the OAuth flow if no valid
// token is cached for the environment.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.NewGoogleOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build oauth config: %w", err)
	}

	token, err := utils.ObtainToken(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{service: service}, nil
}
