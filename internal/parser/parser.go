// Package parser turns command lines into commands.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"git.sr.ht/~jakintosh/loanbook/internal/command"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"git.sr.ht/~jakintosh/loanbook/internal/util"
	"github.com/shopspring/decimal"
)

// Argument prefixes.
const (
	PrefixName       = "n/"
	PrefixPhone      = "p/"
	PrefixEmail      = "e/"
	PrefixValue      = "v/"
	PrefixStartDate  = "s/"
	PrefixReturnDate = "r/"
)

var ErrUnknownCommand = fmt.Errorf("%w: unknown command", core.ErrValidation)

// Parse reads one command line.
func Parse(input string) (command.Command, error) {
	word, args, _ := strings.Cut(strings.TrimSpace(input), " ")
	args = strings.TrimSpace(args)

	switch word {
	case command.AddWord:
		return parseAdd(args)
	case command.ListWord:
		return command.List{}, nil
	case command.LinkLoanWord:
		return parseLinkLoan(args)
	case command.MarkLoanWord:
		return parseIndexed(args, command.MarkLoanUsage, func(i command.Index) command.Command {
			return command.MarkLoan{Loan: i}
		})
	case command.UnmarkLoanWord:
		return parseIndexed(args, command.UnmarkLoanUsage, func(i command.Index) command.Command {
			return command.UnmarkLoan{Loan: i}
		})
	case command.DeleteLoanWord:
		return parseIndexed(args, command.DeleteLoanUsage, func(i command.Index) command.Command {
			return command.DeleteLoan{Loan: i}
		})
	case command.EditLoanWord:
		return parseEditLoan(args)
	case command.ViewLoanWord:
		return parseViewLoan(args)
	case command.ViewLoansWord:
		return parseViewLoans(args)
	case command.AnalyticsWord:
		return parseIndexed(args, command.AnalyticsUsage, func(i command.Index) command.Command {
			return command.Analytics{Person: i}
		})
	case command.HelpWord:
		return command.Help{}, nil
	case command.ExitWord:
		return command.Exit{}, nil
	case "":
		return nil, fmt.Errorf("%w: type a command, or help to list them", core.ErrValidation)
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownCommand, word)
}

func formatError(usage string) error {
	return fmt.Errorf("%w: invalid command format!\n%s", core.ErrValidation, usage)
}

func parseAdd(args string) (command.Command, error) {
	a := tokenize(args, PrefixName, PrefixPhone, PrefixEmail)
	if a.preamble != "" || !a.has(PrefixName) {
		return nil, formatError(command.AddUsage)
	}
	if err := a.verifyNoDuplicates(); err != nil {
		return nil, err
	}
	return command.Add{
		Name:  a.value(PrefixName),
		Phone: a.value(PrefixPhone),
		Email: a.value(PrefixEmail),
	}, nil
}

func parseLinkLoan(args string) (command.Command, error) {
	a := tokenize(args, PrefixValue, PrefixStartDate, PrefixReturnDate)
	if a.preamble == "" || !a.has(PrefixValue) || !a.has(PrefixStartDate) || !a.has(PrefixReturnDate) {
		return nil, formatError(command.LinkLoanUsage)
	}
	index, err := ParseIndex(a.preamble)
	if err != nil {
		return nil, err
	}
	if err := a.verifyNoDuplicates(); err != nil {
		return nil, err
	}

	value, err := ParseValue(a.value(PrefixValue))
	if err != nil {
		return nil, err
	}
	start, err := core.ParseDate(a.value(PrefixStartDate))
	if err != nil {
		return nil, err
	}
	ret, err := core.ParseDate(a.value(PrefixReturnDate))
	if err != nil {
		return nil, err
	}
	if !core.IsValidDates(start, ret) {
		return nil, core.ErrInvalidDates
	}

	return command.LinkLoan{Person: index, Value: value, StartDate: start, ReturnDate: ret}, nil
}

func parseEditLoan(args string) (command.Command, error) {
	a := tokenize(args, PrefixValue, PrefixStartDate, PrefixReturnDate)
	if a.preamble == "" || (!a.has(PrefixValue) && !a.has(PrefixStartDate) && !a.has(PrefixReturnDate)) {
		return nil, formatError(command.EditLoanUsage)
	}
	index, err := ParseIndex(a.preamble)
	if err != nil {
		return nil, err
	}
	if err := a.verifyNoDuplicates(); err != nil {
		return nil, err
	}

	edit := command.EditLoan{Loan: index}
	if a.has(PrefixValue) {
		value, err := ParseValue(a.value(PrefixValue))
		if err != nil {
			return nil, err
		}
		edit.Value = core.Some(value)
	}
	if a.has(PrefixStartDate) {
		d, err := core.ParseDate(a.value(PrefixStartDate))
		if err != nil {
			return nil, err
		}
		edit.StartDate = core.Some(d)
	}
	if a.has(PrefixReturnDate) {
		d, err := core.ParseDate(a.value(PrefixReturnDate))
		if err != nil {
			return nil, err
		}
		edit.ReturnDate = core.Some(d)
	}
	return edit, nil
}

// parseViewLoan reads "[INDEX] [-a]". Without an index it views every loan.
func parseViewLoan(args string) (command.Command, error) {
	showAll, rest := extractFlag(args, command.ShowAllFlag)
	if rest == "" {
		return command.ViewLoans{ShowAll: showAll}, nil
	}
	index, err := ParseIndex(rest)
	if err != nil {
		return nil, formatError(command.ViewLoanUsage)
	}
	return command.ViewLoan{Person: index, ShowAll: showAll}, nil
}

func parseViewLoans(args string) (command.Command, error) {
	showAll, rest := extractFlag(args, command.ShowAllFlag)
	if rest != "" {
		return nil, formatError(command.ViewLoansUsage)
	}
	return command.ViewLoans{ShowAll: showAll}, nil
}

// parseIndexed reads commands whose only argument is an index.
func parseIndexed(args, usage string, build func(command.Index) command.Command) (command.Command, error) {
	if args == "" {
		return nil, formatError(usage)
	}
	i, err := ParseIndex(args)
	if err != nil {
		return nil, err
	}
	return build(i), nil
}

// ParseIndex reads a one-based index.
func ParseIndex(s string) (command.Index, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: index is not a non-zero unsigned integer", core.ErrValidation)
	}
	return command.Index(n), nil
}

// ParseValue evaluates an amount expression and requires a positive result.
func ParseValue(s string) (decimal.Decimal, error) {
	v, err := util.EvaluateExpression(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	if !core.IsValidValue(v) {
		return decimal.Zero, core.ErrInvalidValue
	}
	return v, nil
}

// extractFlag removes every standalone occurrence of flag from args.
func extractFlag(args, flag string) (bool, string) {
	found := false
	var rest []string
	for _, f := range strings.Fields(args) {
		if f == flag {
			found = true
			continue
		}
		rest = append(rest, f)
	}
	return found, strings.Join(rest, " ")
}

// arguments holds the text before the first prefix and every value given per prefix.
type arguments struct {
	preamble string
	values   map[string][]string
}

// tokenize splits args on prefixes that start a word.
func tokenize(args string, prefixes ...string) arguments {
	type mark struct {
		pos    int
		prefix string
	}

	padded := " " + args
	var marks []mark
	for _, p := range prefixes {
		from := 0
		for {
			j := strings.Index(padded[from:], " "+p)
			if j < 0 {
				break
			}
			marks = append(marks, mark{pos: from + j + 1, prefix: p})
			from += j + 1
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].pos < marks[j].pos })

	a := arguments{values: make(map[string][]string)}
	end := len(padded)
	if len(marks) > 0 {
		end = marks[0].pos
	}
	a.preamble = strings.TrimSpace(padded[:end])
	for k, m := range marks {
		stop := len(padded)
		if k+1 < len(marks) {
			stop = marks[k+1].pos
		}
		a.values[m.prefix] = append(a.values[m.prefix], strings.TrimSpace(padded[m.pos+len(m.prefix):stop]))
	}
	return a
}

func (a arguments) has(prefix string) bool {
	return len(a.values[prefix]) > 0
}

// value returns the last value given for prefix.
func (a arguments) value(prefix string) string {
	vs := a.values[prefix]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

func (a arguments) verifyNoDuplicates() error {
	var dups []string
	for p, vs := range a.values {
		if len(vs) > 1 {
			dups = append(dups, p)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)
	return fmt.Errorf("%w: multiple values specified for the following single-valued field(s): %s",
		core.ErrValidation, strings.Join(dups, " "))
}

// Issue is a script line that could not be parsed.
type Issue struct {
	Line    int
	Message string
}

// Entry is one parsed script line.
type Entry struct {
	Line    int
	Input   string
	Command command.Command
}

type Script struct {
	Entries []Entry
	Issues  []Issue
}

// ParseScript reads one command per line. Blank lines and lines starting with
// '#' or ';' are skipped. Lines that fail to parse are reported as issues.
func ParseScript(r io.Reader) (Script, error) {
	var (
		script     Script
		scanner    = bufio.NewScanner(r)
		lineNumber = 0
	)
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		cmd, err := Parse(line)
		if err != nil {
			script.Issues = append(script.Issues, Issue{Line: lineNumber, Message: err.Error()})
			continue
		}
		script.Entries = append(script.Entries, Entry{Line: lineNumber, Input: line, Command: cmd})
	}
	if err := scanner.Err(); err != nil {
		return Script{}, fmt.Errorf("error reading script: %w", err)
	}
	return script, nil
}
