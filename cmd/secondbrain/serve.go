package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/secondbrain-dev/secondbrain/internal/api"
	"github.com/secondbrain-dev/secondbrain/internal/auth"
	"github.com/secondbrain-dev/secondbrain/internal/config"
	"github.com/secondbrain-dev/secondbrain/internal/db"
	"github.com/secondbrain-dev/secondbrain/internal/logger"
	"github.com/secondbrain-dev/secondbrain/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := logger.Init(cfg.Log.Level); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			tokens := auth.NewTokens(cfg.JWT.Secret)

			// Without a Google client ID the verifier stays nil and
			// /google-auth rejects every token.
			var google auth.GoogleVerifier
			if cfg.Google.ClientID != "" {
				google, err = auth.NewGoogleVerifier(context.Background(), cfg.Google.ClientID)
				if err != nil {
					return err
				}
			} else {
				logger.Log.Warn("BRAIN_GOOGLE_CLIENT_ID not set; Google sign-in disabled")
			}

			router := api.NewRouter(api.Deps{
				AuthMiddleware: auth.NewMiddleware(tokens),
				Tokens:         tokens,
				Google:         google,
				UserStore:      store.NewUserStore(database),
				ContentStore:   store.NewContentStore(database),
				ShareLinkStore: store.NewShareLinkStore(database),
			})

			logger.Log.Infow("listening", "addr", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
