package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/ai/gemini"
	"github.com/avoskres/career-compass/internal/engine"
	"github.com/avoskres/career-compass/internal/logger"
	"github.com/avoskres/career-compass/internal/secrets"
	"github.com/avoskres/career-compass/internal/server"
)

const defaultAddress = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interview engine over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address, overrides server.address from the config")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	ctx := context.Background()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	zl.Info("starting the career-compass server", zap.String("version", version))

	eng := buildEngine(ctx, config, zl)

	address := defaultAddress
	var origins []string
	if config.Server != nil {
		if config.Server.Address != "" {
			address = config.Server.Address
		}
		origins = config.Server.AllowedOrigins
	}

	srv := server.New(server.Config{
		Address:        address,
		AllowedOrigins: origins,
		Debug:          viper.GetBool("debug"),
	}, eng, zl)

	zl.Info("listening", zap.String("address", address))
	if err := srv.Run(); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

// buildEngine assembles the engine, attaching the Gemini advisor and
// extractor when the AI section is enabled. Any failure to set up the
// advisory backend downgrades to the fully deterministic engine instead of
// stopping the interview.
func buildEngine(ctx context.Context, config *Config, zl *zap.Logger) *engine.Engine {
	timeout := time.Duration(0)
	var advisor ai.Advisor
	var extractor ai.Extractor

	if config != nil && config.AI != nil && config.AI.Enabled {
		timeout = time.Duration(config.AI.TimeoutSeconds) * time.Second

		adv, ext, err := newGeminiAdvisory(ctx, config.AI, zl)
		if err != nil {
			zl.Warn("advisory model disabled", zap.Error(err))
		} else {
			advisor = adv
			extractor = ext
		}
	}

	return engine.New(zl, advisor, extractor, timeout)
}

func newGeminiAdvisory(ctx context.Context, cfg *AIConfig, zl *zap.Logger) (ai.Advisor, ai.Extractor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, nil, err
	}

	aiLogger := logger.WithAIFields(zl, "gemini", generator.Model())

	return gemini.NewAdvisor(generator, aiLogger, cfg.MaxLogLength),
		gemini.NewExtractor(generator, aiLogger, cfg.MaxLogLength),
		nil
}
