package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/haneulk/kortour/bookmark"
	"github.com/haneulk/kortour/config"
	"github.com/haneulk/kortour/stats"
	"github.com/haneulk/kortour/tourapi"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	apiClient    *tourapi.Client
	statsService *stats.Service

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kortour",
	Short: "Browse Korea Tourism Organization open data from the terminal",
	Long: `kortour is a CLI for the Korea Tourism Organization KorService2 API.
It lists and searches tourist places, shows detail, introduction, image
and pet-travel information, aggregates per-region and per-type
statistics, and keeps per-user bookmarks in Postgres.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build metadata injected by the linker.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	// CLI calls run in a server execution context; the server-only key
	// applies when configured.
	serviceKey := cfg.TourAPI.ResolveServiceKey(config.ExecServer)

	apiClient, err = tourapi.NewClient(serviceKey, logger,
		tourapi.WithBaseURL(cfg.TourAPI.BaseURL),
		tourapi.WithAppName(cfg.TourAPI.AppName),
		tourapi.WithMaxRetries(cfg.TourAPI.MaxRetries),
		tourapi.WithTimeout(time.Duration(cfg.TourAPI.TimeoutSeconds)*time.Second),
		tourapi.WithRateLimit(cfg.TourAPI.RateLimit),
		tourapi.WithCache(buildCache()),
	)
	if err != nil {
		return fmt.Errorf("failed to create tour API client: %w", err)
	}

	statsService = stats.NewService(apiClient, logger)

	return nil
}

// buildCache selects the response cache backend from config.
func buildCache() tourapi.Cache {
	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		return tourapi.NewRedisCache(rdb, "tourapi:", logger)
	case "none":
		return nil
	default:
		return tourapi.NewMemoryCache()
	}
}

// openBookmarks connects to the bookmarks store, used only by commands
// that need it.
func openBookmarks(ctx context.Context) (*bookmark.Store, error) {
	if !cfg.Bookmarks.Enabled {
		return nil, fmt.Errorf("bookmarks are disabled; set bookmarks.enabled in config")
	}

	store, err := bookmark.NewStore(cfg.Bookmarks.DSN, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only on a real terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the tour API",
	Long:  `Test the connection and service key against the tour API by fetching a minimal area-code page.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", cfg.TourAPI.BaseURL)

	ctx := context.Background()
	if err := apiClient.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")

	resp, err := apiClient.AreaCodes(ctx, tourapi.AreaCodeParams{})
	if err != nil {
		return fmt.Errorf("failed to fetch area codes: %w", err)
	}

	fmt.Printf("\nKnown top-level regions: %d\n", len(resp.Items()))
	for _, area := range resp.Items() {
		fmt.Printf("  • %s (code %s)\n", area.Name, area.Code)
	}

	return nil
}
