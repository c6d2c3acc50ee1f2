package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

var (
	retrieveTopK int
	retrieveJSON bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [question]",
	Short: "Retrieve the most similar customer documents",
	Long: `Embeds the question and returns the top-k most similar customer
documents by cosine similarity, without generating an answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 0, "number of documents to retrieve (0 = configured default)")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output hits as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	svc, err := getQueryService(cmd)
	if err != nil {
		return err
	}

	k := retrieveTopK
	if k <= 0 {
		k = defaultTopK()
	}

	hits, err := svc.Retrieve(cmd.Context(), args[0], k)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if retrieveJSON {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding hits: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputHits(cmd, hits)
}

func outputHits(cmd *cobra.Command, hits []domain.RetrievedDocument) error {
	if len(hits) == 0 {
		cmd.Println("No matching documents.")
		return nil
	}

	cmd.Println("Hits:")
	cmd.Println()
	for i, hit := range hits {
		cmd.Printf("  [%d] customer %d (%.4f)\n", i+1, hit.Position, hit.Score)
		cmd.Printf("      %s\n", hit.Document.Text)
		cmd.Println()
	}
	return nil
}
