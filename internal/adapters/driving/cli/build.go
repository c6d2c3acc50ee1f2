package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/churnlens/churnlens-cli/internal/adapters/driven/ai"
	csvsource "github.com/churnlens/churnlens-cli/internal/adapters/driven/recordsource/csv"
	"github.com/churnlens/churnlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/churnlens/churnlens-cli/internal/core/services"
	"github.com/churnlens/churnlens-cli/internal/logger"
)

var (
	buildCSVPath   string
	buildBatchSize int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index from customer records",
	Long: `Reads customer records from the configured CSV file, synthesises one
document per customer, embeds and normalises the documents, and
persists the index artifact atomically. A failed build leaves any
previous artifact untouched.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildCSVPath, "csv", "", "records CSV file (overrides configuration)")
	buildCmd.Flags().IntVar(&buildBatchSize, "batch-size", 0, "embedding batch size (0 = default)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	svc := buildService
	if svc == nil {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		csvPath := buildCSVPath
		if csvPath == "" {
			csvPath = cfg.Records.CSVPath
		}
		if csvPath == "" {
			return errors.New("no records CSV configured; pass --csv or run 'churnlens settings records'")
		}

		embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
		if err != nil {
			return err
		}

		logger.Section("Build")
		logger.Debug("records: %s", csvPath)
		logger.Debug("artifact: %s", cfg.Artifact.Path)

		builder := services.NewBuildService(
			csvsource.NewSource(csvPath),
			embedder,
			sqlite.NewArtifactStore(),
			cfg.Artifact.Path,
		)
		if buildBatchSize > 0 {
			builder.SetBatchSize(buildBatchSize)
		}
		svc = builder
	}

	cmd.Println("Building index...")

	summary, err := svc.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Indexed %d documents (model %s, %d dimensions)\n",
		summary.Documents, summary.ModelID, summary.Dimension)
	cmd.Printf("Artifact written to %s (build %s)\n", summary.Location, summary.BuildID)
	return nil
}
