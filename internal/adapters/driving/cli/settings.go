package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/churnlens/churnlens-cli/internal/adapters/driven/ai"
	"github.com/churnlens/churnlens-cli/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the record source, embedding provider, answer
provider, and classifier endpoint.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Configure the records CSV file",
	RunE:  runSettingsRecords,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long: `Configure the provider used to embed documents and questions.

Changing the embedding model makes any existing artifact unusable for
queries until the index is rebuilt.`,
	RunE: runSettingsEmbedding,
}

var settingsAnswerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Configure the answer provider",
	Long: `Configure the provider used to generate answers from retrieved
context. Leave unset to run in retrieval-only mode.`,
	RunE: runSettingsAnswer,
}

var settingsClassifierCmd = &cobra.Command{
	Use:   "classifier",
	Short: "Configure the churn classifier endpoint",
	RunE:  runSettingsClassifier,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsRecordsCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsAnswerCmd)
	settingsCmd.AddCommand(settingsClassifierCmd)
	rootCmd.AddCommand(settingsCmd)
}

var embeddingProviders = []string{"openai", "ollama"}

var answerProviders = []string{"openai", "anthropic", "ollama", "none"}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Artifact]")
	cmd.Printf("  Path: %s\n", cfg.Artifact.Path)
	cmd.Println()

	cmd.Println("[Records]")
	if cfg.Records.CSVPath != "" {
		cmd.Printf("  CSV: %s\n", cfg.Records.CSVPath)
	} else {
		cmd.Println("  CSV: (not set)")
	}
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", cfg.Embedding.Provider)
	if cfg.Embedding.Model != "" {
		cmd.Printf("  Model: %s\n", cfg.Embedding.Model)
	} else {
		cmd.Println("  Model: (provider default)")
	}
	if cfg.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", cfg.Embedding.BaseURL)
	}
	if cfg.Embedding.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(cfg.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[Answer]")
	if cfg.Answer.Provider != "" {
		cmd.Printf("  Provider: %s\n", cfg.Answer.Provider)
		if cfg.Answer.Model != "" {
			cmd.Printf("  Model: %s\n", cfg.Answer.Model)
		} else {
			cmd.Println("  Model: (provider default)")
		}
		if cfg.Answer.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", cfg.Answer.BaseURL)
		}
		if cfg.Answer.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(cfg.Answer.APIKey))
		}
	} else {
		cmd.Println("  Provider: (not set, retrieval-only mode)")
	}
	cmd.Println()

	cmd.Println("[Classifier]")
	if cfg.Classifier.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", cfg.Classifier.BaseURL)
	} else {
		cmd.Println("  Base URL: (not set)")
	}
	cmd.Println()

	cmd.Println("[Ask]")
	cmd.Printf("  Top-k: %d\n", cfg.Ask.TopK)

	return nil
}

func runSettingsRecords(cmd *cobra.Command, _ []string) error {
	return updateConfig(func(cfg *file.Config) error {
		reader := bufio.NewReader(cmd.InOrStdin())

		cmd.Print("Enter records CSV path: ")
		path := readLine(reader)
		if path == "" {
			return errors.New("path is required")
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		cfg.Records.CSVPath = path
		cmd.Printf("Records CSV set to %s\n", path)
		return nil
	})
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	return updateConfig(func(cfg *file.Config) error {
		reader := bufio.NewReader(cmd.InOrStdin())

		cmd.Println("Select Embedding Provider")
		for i, p := range embeddingProviders {
			cmd.Printf("  %d. %s\n", i+1, p)
		}
		cmd.Print("\nEnter choice [1]: ")
		idx := parseChoice(readLine(reader), len(embeddingProviders), 1)
		provider := embeddingProviders[idx-1]

		cmd.Print("Enter model name (empty for provider default): ")
		model := readLine(reader)

		var apiKey string
		if provider == "openai" {
			cmd.Print("Enter API key: ")
			apiKey = readPassword()
			cmd.Println()
			if apiKey == "" {
				return errors.New("API key is required for this provider")
			}
		}

		cfg.Embedding.Provider = provider
		cfg.Embedding.Model = model
		cfg.Embedding.APIKey = apiKey

		// Validate the configuration by pinging the service
		cmd.Print("Validating configuration... ")
		if err := ai.ValidateEmbeddingConfig(cfg.Embedding); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("embedding configuration validation failed: %w", err)
		}
		cmd.Println("OK")

		cmd.Printf("Embedding provider configured: %s\n", provider)
		cmd.Println("Note: rebuild the index after changing the embedding model.")
		return nil
	})
}

func runSettingsAnswer(cmd *cobra.Command, _ []string) error {
	return updateConfig(func(cfg *file.Config) error {
		reader := bufio.NewReader(cmd.InOrStdin())

		cmd.Println("Select Answer Provider")
		for i, p := range answerProviders {
			cmd.Printf("  %d. %s\n", i+1, p)
		}
		cmd.Print("\nEnter choice [1]: ")
		idx := parseChoice(readLine(reader), len(answerProviders), 1)
		provider := answerProviders[idx-1]

		if provider == "none" {
			cfg.Answer = file.AnswerConfig{}
			cmd.Println("Answer generation disabled; ask will return retrieved context only.")
			return nil
		}

		cmd.Print("Enter model name (empty for provider default): ")
		model := readLine(reader)

		var apiKey string
		if provider == "openai" || provider == "anthropic" {
			cmd.Print("Enter API key: ")
			apiKey = readPassword()
			cmd.Println()
			if apiKey == "" {
				return errors.New("API key is required for this provider")
			}
		}

		cfg.Answer.Provider = provider
		cfg.Answer.Model = model
		cfg.Answer.APIKey = apiKey

		// Validate the configuration by pinging the service
		cmd.Print("Validating configuration... ")
		if err := ai.ValidateAnswerConfig(cfg.Answer); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("answer configuration validation failed: %w", err)
		}
		cmd.Println("OK")

		cmd.Printf("Answer provider configured: %s\n", provider)
		return nil
	})
}

func runSettingsClassifier(cmd *cobra.Command, _ []string) error {
	return updateConfig(func(cfg *file.Config) error {
		reader := bufio.NewReader(cmd.InOrStdin())

		cmd.Print("Enter classifier base URL (empty to disable): ")
		cfg.Classifier.BaseURL = readLine(reader)

		if cfg.Classifier.BaseURL == "" {
			cmd.Println("Classifier disabled.")
		} else {
			cmd.Printf("Classifier endpoint set to %s\n", cfg.Classifier.BaseURL)
		}
		return nil
	})
}

// updateConfig loads the configuration, applies fn, and saves the
// result when fn succeeds.
func updateConfig(fn func(*file.Config) error) error {
	store, err := file.NewStore(configDirFlag)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := fn(cfg); err != nil {
		return err
	}
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
