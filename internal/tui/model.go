// Package tui implements the terminal interface for the loan book. A single
// command line drives the book; the panels above it follow the book's view state.
package tui

import (
	"context"
	"fmt"
	"time"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/command"
	"git.sr.ht/~jakintosh/loanbook/internal/intelligence"
	"git.sr.ht/~jakintosh/loanbook/internal/log"
	"git.sr.ht/~jakintosh/loanbook/internal/storage"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel creates a TUI over b. Changes are written to store after every command
// that modifies the book; a nil store keeps the book in memory only.
func NewModel(b *book.Book, store storage.Store, logger *log.Logger, historySize int) *Model {
	if logger == nil {
		logger = log.Discard()
	}
	if historySize <= 0 {
		historySize = defaultHistorySize
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type a command, or help"
	input.ShowSuggestions = true
	input.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	input.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	input.Focus()

	m := &Model{
		book:        b,
		store:       store,
		logger:      logger.WithComponent(log.ComponentTUI),
		cmdLogger:   logger.WithComponent(log.ComponentCommand),
		completer:   intelligence.NewCompleter(command.Words),
		input:       input,
		historySize: historySize,
		feedback:    "Welcome to loanbook. Type help to list the commands.",
	}
	b.Subscribe(func(e book.Event) {
		m.logger.Debug("book changed", "event", e.String())
	})
	return m
}

// Init initializes the model and returns the initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTick{} }))
}

// Update handles incoming messages and updates the model state
func (m *Model) Update(msg tea.Msg) (updated tea.Model, cmd tea.Cmd) {
	defer func() {
		if recovered := recover(); recovered != nil {
			recoveredErr := fmt.Errorf("unexpected internal error: %v", recovered)
			if saveErr := m.save(); saveErr != nil {
				recoveredErr = fmt.Errorf("%w (failed to save the book: %v)", recoveredErr, saveErr)
			} else if m.store != nil {
				recoveredErr = fmt.Errorf("%w (the book was saved)", recoveredErr)
			}
			m.logger.Error("recovered from panic", log.FieldOperation, log.OpRecover, log.FieldError, recoveredErr)
			m.err = recoveredErr
			updated = m
			cmd = nil
		}
	}()

	if m.err != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "ctrl+q", "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil
	case statusTick:
		if !m.statusExpiry.IsZero() && time.Now().After(m.statusExpiry) {
			m.statusMessage = ""
			m.statusExpiry = time.Time{}
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTick{} })
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// View renders the panels, the feedback box and the command line
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress ctrl+q to quit.", m.err)
	}
	return m.renderMain()
}

// save writes the book to the store.
func (m *Model) save() error {
	if m.store == nil {
		return nil
	}
	data := m.book.Snapshot()
	if err := m.store.Save(context.Background(), data); err != nil {
		m.logger.Error("save failed", log.FieldOperation, log.OpSave, log.FieldError, err)
		return fmt.Errorf("save book: %w", err)
	}
	m.saves++
	m.logger.Info("book saved", log.FieldOperation, log.OpSave, log.FieldCount, len(data.Loans))
	return nil
}

func (m *Model) setStatus(message string, kind statusKind, duration time.Duration) {
	m.statusMessage = message
	m.statusKind = kind
	m.statusExpiry = time.Now().Add(duration)
}

// statusLine returns the current status message if it hasn't expired
func (m *Model) statusLine() string {
	if m.statusMessage == "" {
		return ""
	}
	if !m.statusExpiry.IsZero() && time.Now().After(m.statusExpiry) {
		return ""
	}
	return formatStatus(m.statusMessage, m.statusKind)
}
