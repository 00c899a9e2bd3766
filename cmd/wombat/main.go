package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/layer-3/wombat/adapters/bridge"
	"github.com/layer-3/wombat/adapters/environment"
	"github.com/layer-3/wombat/adapters/events"
	"github.com/layer-3/wombat/adapters/metrics"
	"github.com/layer-3/wombat/adapters/reporter"
	"github.com/layer-3/wombat/adapters/store"
	"github.com/layer-3/wombat/adapters/tokenizer"
	"github.com/layer-3/wombat/ports"
	"github.com/layer-3/wombat/service"
	"github.com/layer-3/wombat/transport/http"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "wombat",
		Short: "Serve the Wombat wallet authenticator over HTTP",
		Long: `wombat connects to a locally running Wombat wallet companion and exposes
the authenticator lifecycle (init, reset, login, logout) over HTTP.

Configuration is read from --config, WOMBAT_* environment variables and flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("app-name", "", "application name presented to the wallet")
	flags.String("listen-addr", ":9000", "HTTP listen address")
	flags.String("redis-url", "", "redis URL for sessions and events; in-memory when empty")
	flags.String("bridge-url", "http://127.0.0.1:50006", "wallet companion base URL")
	flags.String("log-level", "info", "log level")

	for key, flag := range map[string]string{
		"app_name":    "app-name",
		"listen_addr": "listen-addr",
		"redis_url":   "redis-url",
		"bridge_url":  "bridge-url",
		"log_level":   "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func run(ctx context.Context, cfg *Config) error {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	logger.SetLevel(level)
	log := logger.WithField("app", cfg.AppName)

	// Generate a new ECDSA key pair; sessions do not survive a restart.
	signKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	sessions, eventPub, err := setupStorage(cfg, log)
	if err != nil {
		return err
	}

	walletBridge := bridge.NewHTTPBridge(cfg.BridgeURL)
	auth, err := service.NewAuthenticator(cfg.Chains, service.Config{
		AppName:     cfg.AppName,
		Locator:     bridge.NewHTTPLocator(walletBridge),
		Environment: environment.NewStatic(cfg.Origin, cfg.UserAgent, log),
		Reporter:    reporter.NewLogrusReporter(log),
		Recorder:    recorder,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	host := service.NewHostService(auth, tokenizer.NewJWTTokenizer(signKey), sessions, eventPub, log).
		WithSessionTTL(cfg.SessionTTL)

	// Connect eagerly; a missing wallet is recorded and can be retried through /authenticator/reset.
	auth.Reset(ctx)

	router := http.SetupRouter(host, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.WithField("addr", cfg.ListenAddr).Info("listening")
	return router.Run(cfg.ListenAddr)
}

func setupStorage(cfg *Config, log logrus.FieldLogger) (ports.Store, ports.EventPublisher, error) {
	if cfg.RedisURL == "" {
		log.Warn("redis_url not set, keeping sessions in memory and not publishing events")
		return store.NewMemoryStore(), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	redisClient := redis.NewClient(opts)

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis publisher: %w", err)
	}

	return store.NewRedisStore(redisClient), events.NewWatermillPublisher(publisher), nil
}
