package tui

import (
	"time"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/intelligence"
	"git.sr.ht/~jakintosh/loanbook/internal/log"
	"git.sr.ht/~jakintosh/loanbook/internal/storage"
	"github.com/charmbracelet/bubbles/textinput"
)

// Constants define UI behavior
const (
	statusDuration       = 5 * time.Second
	statusShortDuration  = 3 * time.Second
	maxSuggestionDisplay = 5
	defaultHistorySize   = 50
	panelGap             = 4
)

// statusKind represents the type of status message being displayed
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model is the main application state container for the TUI
type Model struct {
	book      *book.Book
	store     storage.Store
	logger    *log.Logger
	cmdLogger *log.Logger
	completer *intelligence.Completer

	input       textinput.Model
	history     []string
	historySize int
	historyPos  int
	draft       string

	feedback      string
	statusMessage string
	statusKind    statusKind
	statusExpiry  time.Time
	saves         int

	windowWidth int
	err         error
}

// statusTick is sent periodically to update status message expiry
type statusTick struct{}
