// Package tui provides the interactive chat over the churn index,
// built on Bubbletea following the Elm architecture.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
)

// askCompleted is sent when a question has been answered.
type askCompleted struct {
	Result   domain.QueryResult
	Degraded bool
	Err      error
}

// chatEntry is one exchange in the conversation history.
type chatEntry struct {
	question string
	answer   string
	degraded bool
	err      error
}

// ChatModel is the chat application model. It implements tea.Model.
type ChatModel struct {
	query driving.QueryService
	topK  int
	ctx   context.Context

	styles   *Styles
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	history []chatEntry
	waiting bool
	ready   bool
	width   int
	height  int
}

// Ensure ChatModel implements tea.Model.
var _ tea.Model = (*ChatModel)(nil)

// NewChatModel creates the chat model over the given query service.
func NewChatModel(query driving.QueryService, topK int) *ChatModel {
	if topK <= 0 {
		topK = 5
	}

	styles := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask about your customers..."
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Muted

	return &ChatModel{
		query:   query,
		topK:    topK,
		ctx:     context.Background(),
		styles:  styles,
		input:   input,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for queries.
func (m *ChatModel) WithContext(ctx context.Context) *ChatModel {
	m.ctx = ctx
	return m
}

// Init initialises the model.
func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case askCompleted:
		m.waiting = false
		last := len(m.history) - 1
		if last >= 0 {
			m.history[last].err = msg.Err
			m.history[last].degraded = msg.Degraded
			if msg.Degraded {
				m.history[last].answer = msg.Result.Context
			} else {
				m.history[last].answer = msg.Result.Answer
			}
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyEnter:
		question := strings.TrimSpace(m.input.Value())
		if question == "" || m.waiting {
			return m, nil
		}
		m.history = append(m.history, chatEntry{question: question})
		m.input.SetValue("")
		m.waiting = true
		m.refreshViewport()
		return m, tea.Batch(m.performAsk(question), m.spinner.Tick)

	default:
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// performAsk runs the question against the query service.
func (m *ChatModel) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.query.Ask(m.ctx, question, m.topK)
		if errors.Is(err, domain.ErrAnswerUnavailable) {
			return askCompleted{Result: result, Degraded: true}
		}
		if err != nil {
			return askCompleted{Err: err}
		}
		return askCompleted{Result: result}
	}
}

func (m *ChatModel) layout() {
	// Header, input box, and status line take up the fixed rows.
	contentHeight := m.height - 6
	if contentHeight < 3 {
		contentHeight = 3
	}
	if m.ready {
		m.viewport.Width = m.width
		m.viewport.Height = contentHeight
	} else {
		m.viewport = viewport.New(m.width, contentHeight)
	}
	m.input.Width = m.width - 6
	m.refreshViewport()
}

// refreshViewport rebuilds the conversation transcript and scrolls to
// the latest exchange.
func (m *ChatModel) refreshViewport() {
	var b strings.Builder
	for i, entry := range m.history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Question.Render("You: "+entry.question) + "\n")
		switch {
		case entry.err != nil:
			b.WriteString(m.styles.Error.Render("Error: "+entry.err.Error()) + "\n")
		case entry.answer == "" && m.waiting && i == len(m.history)-1:
			b.WriteString(m.styles.Muted.Render("thinking...") + "\n")
		case entry.degraded:
			b.WriteString(m.styles.Degraded.Render("(no answer provider, showing retrieved context)") + "\n")
			b.WriteString(entry.answer + "\n")
		default:
			b.WriteString(m.styles.Answer.Render(entry.answer) + "\n")
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the chat.
func (m *ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.styles.Title.Render("churnlens chat") +
		m.styles.Muted.Render(fmt.Sprintf("  %d customers indexed", m.query.Size()))

	status := m.styles.Muted.Render("Enter: send  ↑/↓: scroll  Esc: quit")
	if m.waiting {
		status = m.spinner.View() + m.styles.Muted.Render(" waiting for answer...")
	}

	return header + "\n\n" +
		m.viewport.View() + "\n" +
		m.styles.InputBox.Width(m.width-2).Render(m.input.View()) + "\n" +
		status
}
