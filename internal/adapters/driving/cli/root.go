// Package cli implements the churnlens command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/churnlens/churnlens-cli/internal/adapters/driven/ai"
	restclassifier "github.com/churnlens/churnlens-cli/internal/adapters/driven/classifier/rest"
	"github.com/churnlens/churnlens-cli/internal/adapters/driven/config/file"
	"github.com/churnlens/churnlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
	"github.com/churnlens/churnlens-cli/internal/core/services"
	"github.com/churnlens/churnlens-cli/internal/logger"
)

// version is set from the entrypoint via SetVersion.
var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
)

// Injected services. When nil, commands construct them from the
// configuration file on first use. Tests inject fakes here.
var (
	queryService   driving.QueryService
	buildService   driving.BuildService
	insightService driving.InsightService
)

var rootCmd = &cobra.Command{
	Use:   "churnlens",
	Short: "Retrieval and insight over customer churn records",
	Long: `Churnlens builds a semantic index over customer churn records and
answers questions about them.

Records are synthesised into one document per customer, embedded, and
indexed for exact inner-product search. Ask questions in natural
language, retrieve the raw matches, or call the external churn
classifier for per-customer predictions and explanations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.churnlens)")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*file.Config, error) {
	store, err := file.NewStore(configDirFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// getQueryService returns the injected query service or constructs one
// from the persisted artifact and the configured providers.
func getQueryService(cmd *cobra.Command) (driving.QueryService, error) {
	if queryService != nil {
		return queryService, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildQueryService(cmd.Context(), cfg)
}

// buildQueryService constructs a query service from the persisted
// artifact and the configured providers.
func buildQueryService(ctx context.Context, cfg *file.Config) (driving.QueryService, error) {
	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	answerer, err := ai.CreateAnswerService(cfg.Answer)
	if err != nil {
		return nil, err
	}

	logger.Debug("loading artifact from %s", cfg.Artifact.Path)
	artifact, err := sqlite.NewArtifactStore().Load(ctx, cfg.Artifact.Path)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactMissing) {
			return nil, fmt.Errorf("no index found at %s; run 'churnlens build' first", cfg.Artifact.Path)
		}
		return nil, fmt.Errorf("loading artifact: %w", err)
	}

	return services.NewQueryService(artifact, embedder, answerer)
}

// getInsightService returns the injected insight service or constructs
// one from the configured classifier endpoint.
func getInsightService() (driving.InsightService, error) {
	if insightService != nil {
		return insightService, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Classifier.BaseURL == "" {
		return nil, errors.New("no classifier configured; run 'churnlens settings classifier' first")
	}

	classifier, err := restclassifier.NewClassifier(restclassifier.Config{BaseURL: cfg.Classifier.BaseURL})
	if err != nil {
		return nil, err
	}
	return services.NewInsightService(classifier), nil
}
