package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/log"
	"git.sr.ht/~jakintosh/loanbook/internal/parser"
)

// runScript executes the commands in path and saves the book once they all succeed.
func (a *app) runScript(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	script, err := parser.ParseScript(f)
	if err != nil {
		return err
	}

	changed, err := execute(a.book, script, w)
	if err != nil {
		a.logger.WithComponent(log.ComponentCommand).Error("script failed", log.FieldPath, path, log.FieldError, err)
		return err
	}
	if !changed {
		return nil
	}
	if err := a.store.Save(context.Background(), a.book.Snapshot()); err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	a.logger.Info("script applied", log.FieldOperation, log.OpSave, log.FieldPath, path, log.FieldCount, len(script.Entries))
	return nil
}

// execute runs every entry of script against b, writing each command's feedback to w.
// A script with parse issues is not run at all. Execution stops at the first failing
// command or at exit. It reports whether any command changed the book.
func execute(b *book.Book, script parser.Script, w io.Writer) (bool, error) {
	if len(script.Issues) > 0 {
		for _, issue := range script.Issues {
			fmt.Fprintf(w, "line %d: %s\n", issue.Line, issue.Message)
		}
		return false, fmt.Errorf("script has %d invalid line(s)", len(script.Issues))
	}

	changed := false
	for _, entry := range script.Entries {
		res, err := entry.Command.Execute(b)
		if err != nil {
			return false, fmt.Errorf("line %d (%s): %w", entry.Line, entry.Input, err)
		}
		changed = changed || res.Changed
		fmt.Fprintf(w, "> %s\n%s\n", entry.Input, res.Feedback)
		if res.Exit {
			break
		}
	}
	return changed, nil
}
