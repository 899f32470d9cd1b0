package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lender-quote/adapters/cache"
	"lender-quote/adapters/lead"
	"lender-quote/api"
	"lender-quote/internal/config"
	"lender-quote/internal/logging"
)

var serveAddr string

// serveCmd runs the HTTP quote API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP quote API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	eng, err := buildEngine("")
	if err != nil {
		return err
	}

	var quoteCache cache.Cache
	if cfg.RedisAddr != "" {
		r := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := r.Ping(cmd.Context()); err != nil {
			logging.Warn("redis unavailable, using in-process cache", zap.Error(err))
			quoteCache = cache.NewMemory()
		} else {
			quoteCache = r
		}
	} else {
		quoteCache = cache.NewMemory()
	}

	server := api.NewServer("1.0.0", eng, quoteCache, lead.New(cfg.WebhookURL))

	fmt.Printf("lender-quote API listening on %s\n", addr)
	return server.ListenAndServe(addr)
}
