package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed customers",
	Long: `Retrieves the most similar customer documents and generates an answer
from them using the configured answer provider.

When no answer provider is configured or answer generation fails, the
retrieved context is printed instead so the question is never left
unanswered.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of documents to retrieve (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := getQueryService(cmd)
	if err != nil {
		return err
	}

	k := askTopK
	if k <= 0 {
		k = defaultTopK()
	}

	result, err := svc.Ask(cmd.Context(), args[0], k)
	degraded := errors.Is(err, domain.ErrAnswerUnavailable)
	if err != nil && !degraded {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result, degraded)
	}

	if degraded {
		cmd.Println("Answer generation is unavailable; showing retrieved context.")
		cmd.Println()
		cmd.Println(result.Context)
		return nil
	}

	cmd.Println(result.Answer)
	return nil
}

func outputAskJSON(cmd *cobra.Command, result domain.QueryResult, degraded bool) error {
	payload := struct {
		domain.QueryResult
		Degraded bool `json:"degraded"`
	}{QueryResult: result, Degraded: degraded}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// defaultTopK reads the configured retrieval depth, falling back to 5
// when the configuration cannot be loaded.
func defaultTopK() int {
	cfg, err := loadConfig()
	if err != nil || cfg.Ask.TopK <= 0 {
		return 5
	}
	return cfg.Ask.TopK
}
