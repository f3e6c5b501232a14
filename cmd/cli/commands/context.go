package commands

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/internal/config"
	"github.com/jakechorley/production-scheduler/pkg/cache"
	"github.com/jakechorley/production-scheduler/pkg/clients/gmailclient"
	"github.com/jakechorley/production-scheduler/pkg/clients/sheetsclient"
	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database *postgres.DB
	Provider capacity.Provider
	// Cache is nil when no Redis URL is configured
	Cache  *cache.CapacityCache
	Engine *allocator.Engine
	Logger *zap.Logger
	Ctx    context.Context

	googleOnce   sync.Once
	googleErr    error
	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
}

// GoogleClients returns the Sheets and Gmail clients, running the OAuth flow
// on first use. Only publishing needs them, so other commands never prompt.
func (a *AppContext) GoogleClients() (*sheetsclient.Client, *gmailclient.Client, error) {
	a.googleOnce.Do(func() {
		a.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
		if err != nil {
			a.googleErr = fmt.Errorf("failed to load OAuth client config: %w", err)
			return
		}

		a.Logger.Info("Initializing sheets client")
		a.sheetsClient, err = sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env)
		if err != nil {
			a.googleErr = fmt.Errorf("failed to create sheets client: %w", err)
			return
		}

		// Gmail reuses the token obtained by the sheets client
		a.Logger.Info("Initializing gmail client")
		a.gmailClient, err = gmailclient.NewClient(a.Ctx, oauthCfg, a.sheetsClient.Token(), a.Cfg.Publish.GmailUserID)
		if err != nil {
			a.googleErr = fmt.Errorf("failed to create gmail client: %w", err)
		}
	})

	return a.sheetsClient, a.gmailClient, a.googleErr
}
