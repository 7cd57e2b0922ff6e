// Package main provides the firtag-core CLI.
//
// firtag-core is the tagging and retrieval-evaluation core of the FIR search
// pipeline: it builds the legal-section reference dictionary from a bare act
// document, validates stored case tags against it, generates the evaluation
// question bank, scores the external retriever, and checks the ingested rows
// for duplicate case identities.
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string for the ingested case rows
//   - REDIS_URL: optional Redis URL for the reference dictionary cache
//   - RETRIEVER_URL: base URL of the retrieval service under evaluation
//   - ARTIFACT_DIR: directory for report and lookup artifacts (default ./artifacts)
//   - DEFAULT_ACT: act assumed for bare section numbers (default IPC)
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Local development reads .env; absence is not an error
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown signal received, stopping")
		cancel()
	}()

	rootCmd := buildRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "firtag-core",
		Short:   "FIR section tagging and retrieval evaluation core",
		Version: version,
		// SilenceUsage prevents printing usage on every error.
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		buildReferenceCmd(),
		buildValidateTagsCmd(),
		buildQuestionBankCmd(),
		buildRunEvalCmd(),
		buildCheckDedupCmd(),
	)
	return rootCmd
}

// getEnv returns the environment variable or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
