// Package intelligence suggests completions for the command line from the
// known command words and the lines the user has already entered.
package intelligence

import (
	"strings"
)

// Completer holds the completion sources for the command line.
type Completer struct {
	words   *Trie
	history *Trie
}

// NewCompleter builds a completer over the given command words.
func NewCompleter(words []string) *Completer {
	c := &Completer{words: NewTrie(), history: NewTrie()}
	for _, w := range words {
		c.words.Insert(strings.ToLower(w))
	}
	return c
}

// BuildFromHistory seeds the history source with accepted lines, oldest first.
func (c *Completer) BuildFromHistory(lines []string) {
	for _, line := range lines {
		c.Remember(line)
	}
}

// Remember records a line to offer as a completion. Callers pass only lines that
// were accepted as commands.
func (c *Completer) Remember(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.history.Insert(line)
}

// Suggest returns whole-line suggestions for input. A lone word completes
// against the command words; anything longer completes against history.
func (c *Completer) Suggest(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}

	suggestions := []string{}
	seen := map[string]bool{input: true}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}

	for _, line := range c.history.Find(input) {
		add(line)
	}
	if !strings.ContainsRune(input, ' ') {
		for _, w := range c.words.Find(strings.ToLower(input)) {
			add(w)
		}
	}
	return suggestions
}

// HistorySize is the number of distinct lines remembered.
func (c *Completer) HistorySize() int {
	return c.history.Len()
}
