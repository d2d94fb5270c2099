package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RamiObaid92/AIProjectTest/internal/config"
	"github.com/RamiObaid92/AIProjectTest/internal/descriptors"
	"github.com/RamiObaid92/AIProjectTest/internal/service"
	"github.com/RamiObaid92/AIProjectTest/internal/store"
	"github.com/RamiObaid92/AIProjectTest/internal/web"
)

var serveConfigPath string

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to the configuration file")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resource API server",
	Long:  "Load the type descriptors, open the store, and serve the resource API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFrom(serveConfigPath)
		if err != nil {
			return err
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()

		lookup, err := descriptors.LoadLookup(cfg.Descriptors.Path)
		if err != nil {
			return fmt.Errorf("failed to load descriptors: %w", err)
		}
		logger.Info("descriptors loaded",
			zap.String("path", cfg.Descriptors.Path),
			zap.Int("types", lookup.Count()))

		st, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		var cache service.Cache
		if cfg.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			defer client.Close()
			cache = store.NewCache(client, store.DefaultCacheTTL)
			logger.Info("cache enabled", zap.String("addr", cfg.Redis.Addr))
		}

		svc := service.New(lookup, st, cache, logger)
		router := web.NewRouter(web.NewHandler(svc, logger), web.RouterConfig{
			AuthSecret: cfg.Auth.Secret,
			Logger:     logger,
		})

		server := web.NewServer(cfg.Server.Addr(), router, logger)
		return server.Run(ctx)
	},
}
