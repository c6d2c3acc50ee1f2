package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/churnlens/churnlens-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat",
	Long: `Launch an interactive terminal chat over the indexed customers.

Each message is answered with retrieval-augmented generation against
the index artifact. When no answer provider is configured, responses
show the retrieved context instead.

Controls:
  Enter    - Send message
  ↑/↓      - Scroll history
  Esc      - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	svc, watcher, err := getWatchedQueryService(cmd.Context())
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
	}

	model := tui.NewChatModel(svc, defaultTopK())
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}
