package trie

import (
	"fmt"
	"iter"
	"slices"
)

// Insert adds word to the trie. Words are treated as raw bytes.
// Inserting a word that is already stored is a no-op that still succeeds.
// Insert returns false only when t is nil or destroyed.
func (t *Trie) Insert(word string) bool {
	if !t.alive() {
		return false
	}

	if len(word) > t.maxDepth {
		t.maxDepth = len(word)
	}

	node := t.root
	for i := 0; i < len(word); i++ {
		node = node.childOrCreate(word[i])
	}
	node.isLeaf = true
	return true
}

// InsertAll inserts words in order and stops at the first failure.
func (t *Trie) InsertAll(words ...string) error {
	for _, w := range words {
		if !t.Insert(w) {
			return fmt.Errorf("failed to insert word %q: %w", w, ErrNilTrie)
		}
	}
	return nil
}

// resolve walks from the root along prefix, appending each matched byte to
// buf. It returns nil if some byte of prefix has no matching child.
func (t *Trie) resolve(prefix string, buf []byte) (*node, []byte) {
	node := t.root
	for i := 0; i < len(prefix); i++ {
		node = node.child(prefix[i])
		if node == nil {
			return nil, buf
		}
		buf = append(buf, node.id)
	}
	return node, buf
}

// Words returns a sequence of every stored word that starts with prefix.
// The empty prefix matches every word.
//
// Words are produced depth first: a node's own word comes before the words
// below it. Sibling order is unspecified. The trie must not be modified while
// the sequence is being consumed.
func (t *Trie) Words(prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !t.alive() {
			return
		}

		buf := make([]byte, 0, t.maxDepth)
		node, buf := t.resolve(prefix, buf)
		if node == nil {
			return
		}
		walk(node, buf, yield)
	}
}

// walk reports the word ending at n, then descends into each child with the
// child's byte pushed onto word, popping it again on the way back up.
func walk(n *node, word []byte, yield func(string) bool) bool {
	if n.isLeaf && !yield(string(word)) {
		return false
	}
	for _, c := range n.children {
		word = append(word, c.id)
		if !walk(c, word, yield) {
			return false
		}
		word = word[:len(word)-1]
	}
	return true
}

// Lookup calls fn once for every stored word that starts with prefix, in
// unspecified order. A nil trie or nil fn makes Lookup a no-op, as does a
// prefix no stored word begins with. Any state fn needs should be captured in
// the closure. fn must not modify the trie.
func (t *Trie) Lookup(prefix string, fn func(word string)) {
	if fn == nil {
		return
	}
	for w := range t.Words(prefix) {
		fn(w)
	}
}

// KeysWithPrefix returns all stored words that start with prefix, sorted.
// The result is empty, not nil, when nothing matches.
func (t *Trie) KeysWithPrefix(prefix string) []string {
	results := []string{}
	for w := range t.Words(prefix) {
		results = append(results, w)
	}
	slices.Sort(results)
	return results
}

// Contains reports whether word itself was inserted.
func (t *Trie) Contains(word string) bool {
	if !t.alive() {
		return false
	}
	node, _ := t.resolve(word, nil)
	return node != nil && node.isLeaf
}

// HasPrefix reports whether at least one path in the trie spells prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	if !t.alive() {
		return false
	}
	node, _ := t.resolve(prefix, nil)
	return node != nil
}
