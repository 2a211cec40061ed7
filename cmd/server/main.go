package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/answer"
	"github.com/lumibyte/lumichat/internal/api"
	"github.com/lumibyte/lumichat/internal/chat"
	"github.com/lumibyte/lumichat/internal/config"
	"github.com/lumibyte/lumichat/internal/store"
)

var (
	configPath string
	addr       string
	dataFile   string
	webDir     string
)

var rootCmd = &cobra.Command{
	Use:   "lumichat",
	Short: "Chat session API server with JSON-file persistence",
	Run:   run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	rootCmd.Flags().StringVar(&dataFile, "data", "", "Path to the JSON snapshot file (overrides config)")
	rootCmd.Flags().StringVar(&webDir, "web", "", "Directory of static frontend files (overrides config)")
}

func run(_ *cobra.Command, _ []string) {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config",
			zap.Error(err),
			zap.String("path", configPath))
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if webDir != "" {
		cfg.WebDir = webDir
	}

	st, err := store.Open(cfg.DataFile, logger)
	if err != nil {
		logger.Fatal("failed to open snapshot store",
			zap.Error(err),
			zap.String("path", cfg.DataFile))
	}

	var gen answer.Generator = answer.Mock{}
	if cfg.Answer.Backend == "llm" {
		gen, err = answer.NewLLM(
			cfg.Answer.BaseURL,
			os.Getenv(cfg.Answer.APIKeyEnv),
			cfg.Answer.Model,
		)
		if err != nil {
			logger.Fatal("failed to initialize LLM answer backend", zap.Error(err))
		}
	}

	sessions := chat.NewSessionService(st, logger)
	convs := chat.NewConversationService(st, gen, logger)
	handler := api.NewHandler(sessions, convs, logger)
	router := api.NewRouter(handler, cfg.WebDir, logger)

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
