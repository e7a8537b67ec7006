package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/config"
	"git.sr.ht/~jakintosh/loanbook/internal/log"
	"git.sr.ht/~jakintosh/loanbook/internal/session"
	"git.sr.ht/~jakintosh/loanbook/internal/storage"
	"git.sr.ht/~jakintosh/loanbook/internal/tui"
	"git.sr.ht/~jakintosh/loanbook/internal/version"
	tea "github.com/charmbracelet/bubbletea"
)

const usage = `Track money lent to friends in a terminal UI.

Usage:
  loanbook [options]            open the terminal UI
  loanbook [options] run FILE   execute the commands in FILE, one per line
  loanbook version              print build information

Options:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "loanbook: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("loanbook", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", config.DefaultConfigFile, "path to the YAML config file")
	envPath := flags.String("env", config.DefaultEnvFile, "path to the .env file")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	switch flags.Arg(0) {
	case "version":
		fmt.Fprintln(stdout, version.Get())
		return nil
	case "":
		app, err := start(*configPath, *envPath)
		if err != nil {
			return err
		}
		defer app.close()
		return app.runTUI()
	case "run":
		if flags.NArg() != 2 {
			flags.Usage()
			return errors.New("run takes exactly one script file")
		}
		app, err := start(*configPath, *envPath)
		if err != nil {
			return err
		}
		defer app.close()
		return app.runScript(flags.Arg(1), stdout)
	default:
		flags.Usage()
		return fmt.Errorf("unknown subcommand %q", flags.Arg(0))
	}
}

// app holds what every subcommand that touches the book needs.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	logFile io.Closer
	store   storage.Store
	book    *book.Book
}

func start(configPath, envPath string) (*app, error) {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := log.OpenFile(cfg.LogFile, level)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	logger.Info("starting loanbook",
		log.FieldOperation, log.OpStartup,
		log.FieldVersion, version.Get().Version,
		log.FieldBackend, cfg.DataBackend,
		log.FieldPath, cfg.DataPath,
	)

	a := &app{cfg: cfg, logger: logger, logFile: logFile}
	if err := a.openBook(context.Background()); err != nil {
		logger.Error("could not open the book", log.FieldOperation, log.OpLoad, log.FieldError, err)
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) openBook(ctx context.Context) error {
	storeLogger := a.logger.WithComponent(log.ComponentStorage)

	store, err := storage.Open(a.cfg.DataBackend, a.cfg.DataPath)
	if err != nil {
		return fmt.Errorf("open %s store: %w", a.cfg.DataBackend, err)
	}
	a.store = store

	data, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load book: %w", err)
	}
	b := book.New(a.logger)
	if err := b.Restore(data); err != nil {
		return fmt.Errorf("restore book from %s: %w", a.cfg.DataPath, err)
	}
	a.book = b
	storeLogger.Info("book loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(data.Loans),
		log.FieldPath, a.cfg.DataPath,
	)
	return nil
}

func (a *app) runTUI() error {
	history, err := session.LoadHistory(a.cfg.HistoryFile)
	if err != nil {
		a.logger.Warn("could not load command history", log.FieldPath, a.cfg.HistoryFile, log.FieldError, err)
		history = nil
	}

	model := tui.NewModel(a.book, a.store, a.logger, a.cfg.HistorySize)
	model.SetHistory(history)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if err := session.SaveHistory(a.cfg.HistoryFile, model.History(), a.cfg.HistorySize); err != nil {
		a.logger.Warn("could not save command history", log.FieldPath, a.cfg.HistoryFile, log.FieldError, err)
	}
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("close store", log.FieldError, err)
		}
	}
	a.logger.Info("stopping loanbook", log.FieldOperation, log.OpShutdown)
	if a.logFile != nil {
		a.logFile.Close()
	}
}
