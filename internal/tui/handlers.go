package tui

import (
	"strings"

	"git.sr.ht/~jakintosh/loanbook/internal/log"
	"git.sr.ht/~jakintosh/loanbook/internal/parser"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes keyboard input to the command line
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+q", "ctrl+c":
		return m, m.quit()
	case "enter":
		return m, m.runLine(m.input.Value())
	case "up":
		m.historyBack()
		return m, nil
	case "down":
		m.historyForward()
		return m, nil
	case "esc":
		m.input.Reset()
		m.historyPos = len(m.history)
		m.refreshSuggestions()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// runLine parses and executes one command line. Lines that fail still go into the
// history so they can be recalled and corrected.
func (m *Model) runLine(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	m.input.Reset()
	m.pushHistory(line)
	defer m.refreshSuggestions()

	c, err := parser.Parse(line)
	if err != nil {
		m.feedback = err.Error()
		m.setStatus("Could not read that command", statusError, statusDuration)
		return nil
	}
	res, err := c.Execute(m.book)
	if err != nil {
		m.cmdLogger.Debug("command failed", log.FieldCommand, line, log.FieldError, err)
		m.feedback = err.Error()
		m.setStatus("Command failed", statusError, statusDuration)
		return nil
	}

	m.cmdLogger.Debug("command executed", log.FieldCommand, line)
	m.feedback = res.Feedback
	m.completer.Remember(line)

	if res.Exit {
		return m.quit()
	}
	if res.Changed {
		if err := m.save(); err != nil {
			m.setStatus(err.Error(), statusError, statusDuration)
			return nil
		}
		if m.store != nil {
			m.setStatus("Saved", statusSuccess, statusShortDuration)
		}
	}
	return nil
}

// quit saves the book and stops the program. The program stops even when the
// save fails; the failure is logged.
func (m *Model) quit() tea.Cmd {
	if err := m.save(); err != nil {
		m.logger.Error("could not save before exit", log.FieldOperation, log.OpShutdown, log.FieldError, err)
	}
	return tea.Quit
}

func (m *Model) pushHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if over := len(m.history) - m.historySize; over > 0 {
		m.history = append([]string(nil), m.history[over:]...)
	}
	m.historyPos = len(m.history)
	m.draft = ""
}

func (m *Model) historyBack() {
	if m.historyPos == 0 {
		return
	}
	if m.historyPos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.historyPos--
	m.input.SetValue(m.history[m.historyPos])
	m.input.CursorEnd()
	m.refreshSuggestions()
}

func (m *Model) historyForward() {
	if m.historyPos >= len(m.history) {
		return
	}
	m.historyPos++
	if m.historyPos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.historyPos])
	}
	m.input.CursorEnd()
	m.refreshSuggestions()
}

// refreshSuggestions updates the suggestion list for the command line
func (m *Model) refreshSuggestions() {
	m.input.SetSuggestions(m.completer.Suggest(m.input.Value()))
}

// SetHistory replaces the command history, oldest line first. Every line can be
// recalled; only lines that parse are offered as completions.
func (m *Model) SetHistory(lines []string) {
	m.history = nil
	var valid []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		m.pushHistory(line)
		if _, err := parser.Parse(line); err == nil {
			valid = append(valid, line)
		}
	}
	m.completer.BuildFromHistory(valid)
}

// History returns the command history, oldest line first.
func (m *Model) History() []string {
	return append([]string(nil), m.history...)
}
