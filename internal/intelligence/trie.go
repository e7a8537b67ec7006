package intelligence

import "sort"

// trieNode is one rune of a stored key.
type trieNode struct {
	children map[rune]*trieNode
	isEnd    bool
	key      string
	uses     int
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie is a prefix tree of keys, each with a use count.
type Trie struct {
	root *trieNode
	size int
}

func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert adds key, or counts another use of it when already present.
func (t *Trie) Insert(key string) {
	current := t.root
	for _, char := range key {
		if current.children[char] == nil {
			current.children[char] = newTrieNode()
		}
		current = current.children[char]
	}
	if !current.isEnd {
		t.size++
	}
	current.isEnd = true
	current.key = key
	current.uses++
}

// Len is the number of distinct keys.
func (t *Trie) Len() int {
	return t.size
}

// Uses returns how often key was inserted.
func (t *Trie) Uses(key string) int {
	if node := t.node(key); node != nil && node.isEnd {
		return node.uses
	}
	return 0
}

// Find returns every key starting with prefix, most used first, then alphabetically.
func (t *Trie) Find(prefix string) []string {
	node := t.node(prefix)
	if node == nil {
		return []string{}
	}

	var found []*trieNode
	collect(node, &found)
	sort.Slice(found, func(i, j int) bool {
		if found[i].uses != found[j].uses {
			return found[i].uses > found[j].uses
		}
		return found[i].key < found[j].key
	})

	results := make([]string, len(found))
	for i, n := range found {
		results[i] = n.key
	}
	return results
}

func (t *Trie) node(prefix string) *trieNode {
	current := t.root
	for _, char := range prefix {
		if current.children[char] == nil {
			return nil
		}
		current = current.children[char]
	}
	return current
}

func collect(node *trieNode, results *[]*trieNode) {
	if node.isEnd {
		*results = append(*results, node)
	}
	for _, child := range node.children {
		collect(child, results)
	}
}
