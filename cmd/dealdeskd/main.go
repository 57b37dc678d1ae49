package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dealdeskhq/dealdesk/internal/events"
	"github.com/dealdeskhq/dealdesk/internal/httpapi"
	"github.com/dealdeskhq/dealdesk/internal/logging"
	"github.com/dealdeskhq/dealdesk/internal/store/gormstore"
	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/dealdeskhq/dealdesk/pkg/directory"
	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	flagDatabaseURL         = "database-url"
	flagListenAddr          = "listen-addr"
	flagAllowedOrigins      = "allowed-origins"
	flagSessionSigningKey   = "session-signing-key"
	flagSessionIssuer       = "session-issuer"
	flagSessionCookieName   = "session-cookie-name"
	flagAMQPURL             = "amqp-url"
	flagAMQPExchange        = "amqp-exchange"
	flagCreditOnRelease     = "credit-on-release"
	flagKeepCurrencyOnTopUp = "keep-currency-on-top-up"

	configKeyDatabaseURL         = "database_url"
	configKeyListenAddr          = "listen_addr"
	configKeyAllowedOrigins      = "allowed_origins"
	configKeySessionSigningKey   = "session_signing_key"
	configKeySessionIssuer       = "session_issuer"
	configKeySessionCookieName   = "session_cookie_name"
	configKeyAMQPURL             = "amqp_url"
	configKeyAMQPExchange        = "amqp_exchange"
	configKeyCreditOnRelease     = "credit_on_release"
	configKeyKeepCurrencyOnTopUp = "keep_currency_on_top_up"

	defaultDatabaseURL       = "sqlite:///tmp/dealdesk.db"
	defaultListenAddr        = ":8080"
	defaultAllowedOrigins    = "http://localhost:3000"
	defaultSessionIssuer     = "dealdesk"
	defaultSessionCookieName = "dealdesk_session"
	defaultAMQPExchange      = "dealdesk.events"
)

type runtimeConfig struct {
	DatabaseURL         string
	ListenAddr          string
	AllowedOrigins      string
	SessionSigningKey   string
	SessionIssuer       string
	SessionCookieName   string
	AMQPURL             string
	AMQPExchange        string
	CreditOnRelease     bool
	KeepCurrencyOnTopUp bool
}

func main() {
	_ = godotenv.Load()
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dealdeskd: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &runtimeConfig{}
	cmd := &cobra.Command{
		Use:           "dealdeskd",
		Short:         "Brand and creator marketplace API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().String(flagDatabaseURL, defaultDatabaseURL, "PostgreSQL or SQLite connection string")
	cmd.Flags().String(flagListenAddr, defaultListenAddr, "HTTP listen address")
	cmd.Flags().String(flagAllowedOrigins, defaultAllowedOrigins, "Comma-delimited CORS origins")
	cmd.Flags().String(flagSessionSigningKey, "", "HMAC key for session tokens")
	cmd.Flags().String(flagSessionIssuer, defaultSessionIssuer, "Expected session token issuer")
	cmd.Flags().String(flagSessionCookieName, defaultSessionCookieName, "Session cookie name")
	cmd.Flags().String(flagAMQPURL, "", "RabbitMQ connection string; empty disables event publishing")
	cmd.Flags().String(flagAMQPExchange, defaultAMQPExchange, "RabbitMQ topic exchange for marketplace events")
	cmd.Flags().Bool(flagCreditOnRelease, false, "Re-credit the spendable balance on escrow release")
	cmd.Flags().Bool(flagKeepCurrencyOnTopUp, false, "Keep the existing wallet currency on top-up")

	return cmd
}

func loadConfig(cmd *cobra.Command, cfg *runtimeConfig) error {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.SetEnvPrefix("DEALDESK")
	viper.AutomaticEnv()

	bindings := map[string]string{
		configKeyDatabaseURL:         flagDatabaseURL,
		configKeyListenAddr:          flagListenAddr,
		configKeyAllowedOrigins:      flagAllowedOrigins,
		configKeySessionSigningKey:   flagSessionSigningKey,
		configKeySessionIssuer:       flagSessionIssuer,
		configKeySessionCookieName:   flagSessionCookieName,
		configKeyAMQPURL:             flagAMQPURL,
		configKeyAMQPExchange:        flagAMQPExchange,
		configKeyCreditOnRelease:     flagCreditOnRelease,
		configKeyKeepCurrencyOnTopUp: flagKeepCurrencyOnTopUp,
	}
	for configKey, flagName := range bindings {
		if err := viper.BindPFlag(configKey, cmd.Flags().Lookup(flagName)); err != nil {
			return err
		}
	}

	cfg.DatabaseURL = viper.GetString(configKeyDatabaseURL)
	cfg.ListenAddr = viper.GetString(configKeyListenAddr)
	cfg.AllowedOrigins = viper.GetString(configKeyAllowedOrigins)
	cfg.SessionSigningKey = viper.GetString(configKeySessionSigningKey)
	cfg.SessionIssuer = viper.GetString(configKeySessionIssuer)
	cfg.SessionCookieName = viper.GetString(configKeySessionCookieName)
	cfg.AMQPURL = viper.GetString(configKeyAMQPURL)
	cfg.AMQPExchange = viper.GetString(configKeyAMQPExchange)
	cfg.CreditOnRelease = viper.GetBool(configKeyCreditOnRelease)
	cfg.KeepCurrencyOnTopUp = viper.GetBool(configKeyKeepCurrencyOnTopUp)

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database url is required")
	}
	if cfg.SessionSigningKey == "" {
		return fmt.Errorf("session signing key is required")
	}
	return nil
}

func runServer(ctx context.Context, cfg *runtimeConfig) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, cleanup, driver, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database open: %w", err)
	}
	defer cleanup()

	if err := prepareSchema(gormDB, driver); err != nil {
		return err
	}

	dealOptions := []deal.ServiceOption{
		deal.WithOperationLogger(logging.NewDealLogger(logger)),
	}
	walletOptions := []wallet.ServiceOption{
		wallet.WithOperationLogger(logging.NewWalletLogger(logger)),
		wallet.WithPolicy(wallet.Policy{
			CreditOnRelease:     cfg.CreditOnRelease,
			KeepCurrencyOnTopUp: cfg.KeepCurrencyOnTopUp,
		}),
	}
	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return fmt.Errorf("event publisher init: %w", err)
		}
		defer func() { _ = publisher.Close() }()
		dealOptions = append(dealOptions, deal.WithEventPublisher(publisher))
		walletOptions = append(walletOptions, wallet.WithEventPublisher(publisher.WalletEvents()))
	}

	millisecondClock := func() int64 { return time.Now().UTC().UnixMilli() }
	dealService, err := deal.NewService(gormstore.NewDealStore(gormDB), millisecondClock, dealOptions...)
	if err != nil {
		return fmt.Errorf("deal service init: %w", err)
	}

	secondClock := func() int64 { return time.Now().UTC().Unix() }
	walletService, err := wallet.NewService(gormstore.NewWalletStore(gormDB), secondClock, walletOptions...)
	if err != nil {
		return fmt.Errorf("wallet service init: %w", err)
	}

	directoryService, err := directory.NewService(gormstore.NewDirectoryStore(gormDB), logger)
	if err != nil {
		return fmt.Errorf("directory service init: %w", err)
	}

	return httpapi.Run(ctx, httpapi.Config{
		ListenAddr:        cfg.ListenAddr,
		AllowedOrigins:    httpapi.ParseAllowedOrigins(cfg.AllowedOrigins),
		SessionSigningKey: cfg.SessionSigningKey,
		SessionIssuer:     cfg.SessionIssuer,
		SessionCookieName: cfg.SessionCookieName,
	}, httpapi.Services{
		Deals:     dealService,
		Wallets:   walletService,
		Directory: directoryService,
	}, logger)
}

func openDatabase(ctx context.Context, dsn string) (*gorm.DB, func() error, string, error) {
	driver, sqlitePath, err := resolveDriver(dsn)
	if err != nil {
		return nil, nil, "", err
	}

	var db *gorm.DB
	cfg := &gorm.Config{}
	switch driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(sqlitePath), cfg)
	default:
		return nil, nil, "", fmt.Errorf("unsupported database scheme %q", driver)
	}
	if err != nil {
		return nil, nil, "", err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, "", err
	}
	cleanup := func() error { return sqlDB.Close() }
	return db.WithContext(ctx), cleanup, driver, nil
}

func resolveDriver(dsn string) (string, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres", "", nil
	}
	if strings.HasPrefix(dsn, "sqlite://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse sqlite url: %w", err)
		}
		path := u.Path
		if path == "" {
			path = u.Host
		}
		if path == "" || path == "/" {
			path = "dealdesk.db"
		}
		sqlitePath, err := normalizeSQLitePath(path)
		return "sqlite", sqlitePath, err
	}
	// Treat everything else as a direct sqlite path.
	sqlitePath, err := normalizeSQLitePath(dsn)
	return "sqlite", sqlitePath, err
}

func normalizeSQLitePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if strings.HasPrefix(path, "/") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		return path, nil
	}
	abs := filepath.Join(".", path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	return abs, nil
}

func prepareSchema(db *gorm.DB, driver string) error {
	if driver != "sqlite" {
		return nil
	}
	if err := db.AutoMigrate(gormstore.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
