package tui

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/loanbook/internal/command"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// renderMain lays out the tab bar, the active panels and the command line
func (m *Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderPanels())
	b.WriteString("\n\n")
	b.WriteString(m.renderFeedback())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString(renderSuggestionList(m.input))
	b.WriteString("\n")
	if msg := m.statusLine(); msg != "" {
		fmt.Fprintf(&b, "%s\n", msg)
	}
	b.WriteString("[enter]run  [tab]complete  [↑/↓]history  [esc]clear  [ctrl+q]quit")
	return b.String()
}

func (m *Model) renderTabs() string {
	s := m.book.State()
	return strings.Join([]string{
		formatTab("Persons", s.PersonTab()),
		formatTab("Loans", s.LoansTab()),
		formatTab("Analytics", s.AnalyticsTab()),
	}, "  ")
}

// renderPanels shows the panels the book's view state asks for
func (m *Model) renderPanels() string {
	s := m.book.State()
	switch {
	case s.AnalyticsTab():
		return m.renderAnalytics()
	case s.PersonTab() && s.LoansTab():
		gap := strings.Repeat(" ", panelGap)
		return lipgloss.JoinHorizontal(lipgloss.Top, m.renderPersons(), gap, m.renderLoans())
	case s.LoansTab():
		return m.renderLoans()
	default:
		return m.renderPersons()
	}
}

func (m *Model) renderPersons() string {
	persons := m.book.VisiblePersons()
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Persons (%d)", len(persons))))
	b.WriteString("\n")
	if len(persons) == 0 {
		b.WriteString("No persons to show.")
		return b.String()
	}
	for i, p := range persons {
		fmt.Fprintf(&b, "%s %s\n", formatIndex(i+1), p.Name)
		if p.Phone != "" {
			fmt.Fprintf(&b, "   Phone: %s\n", p.Phone)
		}
		if p.Email != "" {
			fmt.Fprintf(&b, "   Email: %s\n", p.Email)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderLoans() string {
	loans := m.book.VisibleLoans()
	s := m.book.State()
	today := m.book.Today()

	var b strings.Builder
	heading := "Active loans"
	if s.ShowAllLoans() {
		heading = "All loans"
	}
	b.WriteString(headingStyle.Render(fmt.Sprintf("%s (%d)", heading, loans.Len())))
	b.WriteString("\n")
	if loans.Len() == 0 {
		b.WriteString("No loans to show.")
		return b.String()
	}
	for i := 0; i < loans.Len(); i++ {
		loan := loans.At(i)
		line := loan.String()
		if s.ShowLoaneeInfo() && loan.Assignee() != nil {
			line += " to " + loan.Assignee().Name
		}
		switch {
		case loan.IsReturned():
			line = returnedColor.Render(line)
		case loan.IsOverdueAt(today):
			line = overdueColor.Render(line + " (Overdue)")
		}
		fmt.Fprintf(&b, "%s %s\n", formatIndex(i+1), line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderAnalytics() string {
	d, ok := m.book.Dashboard()
	if !ok {
		return "No analytics generated yet."
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Analytics"))
	b.WriteString("\n")
	b.WriteString(d.Snapshot.String())
	b.WriteString("\n\n")
	b.WriteString(command.FormatDashboard(d, m.book.Today()))
	return b.String()
}

func (m *Model) renderFeedback() string {
	box := feedbackBox
	if m.windowWidth > 2 {
		box = box.Width(m.windowWidth - 2)
	}
	return box.Render(m.feedback)
}

// renderSuggestionList displays completion suggestions below the command line
func renderSuggestionList(input textinput.Model) string {
	matches := input.MatchedSuggestions()
	if len(matches) <= 1 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	display := min(len(matches), maxSuggestionDisplay)
	for i := 0; i < display; i++ {
		cursor := " "
		if i == input.CurrentSuggestionIndex() {
			cursor = cursorColor.Render(">")
		}
		fmt.Fprintf(&b, "  %s %s\n", cursor, matches[i])
	}
	if len(matches) > display {
		fmt.Fprintf(&b, "  ... and %d more\n", len(matches)-display)
	}
	return b.String()
}
