package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/troop900/treelot/internal/config"
	"github.com/troop900/treelot/pkg/clients/gmailclient"
	"github.com/troop900/treelot/pkg/db"
)

// AppContext holds the application dependencies shared across all commands.
// GmailClient is nil when no notification settings are configured.
type AppContext struct {
	Cfg         *config.Config
	GmailClient *gmailclient.Client
	Database    db.Database
	Logger      *zap.Logger
	Ctx         context.Context
}
