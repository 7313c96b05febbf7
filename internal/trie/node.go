package trie

import "errors"

// ErrNilTrie is returned when an operation needs a live trie but gets a nil
// or destroyed one.
var ErrNilTrie = errors.New("trie: nil or destroyed trie")

// rootID is the id carried by the root node. It is never compared against input.
const rootID byte = 0

// node represents one byte position on a path from the root
type node struct {
	// id is the byte that leads from the parent to this node
	id byte

	// isLeaf marks the path from the root to this node as a stored word
	isLeaf bool

	// children maps the next byte to the child node
	children map[byte]*node
}

// newNode creates a new trie node
func newNode(id byte) *node {
	return &node{
		id:       id,
		children: make(map[byte]*node),
	}
}

// child returns the child reached by id, or nil
func (n *node) child(id byte) *node {
	return n.children[id]
}

// childOrCreate returns the child reached by id, attaching a new one if absent
func (n *node) childOrCreate(id byte) *node {
	if c, ok := n.children[id]; ok {
		return c
	}
	c := newNode(id)
	n.children[id] = c
	return c
}

// release tears down the subtree below n. Children are released before they
// are detached from n, so no node is touched after its parent lets go of it.
func (n *node) release() {
	for id, c := range n.children {
		c.release()
		delete(n.children, id)
	}
	n.children = nil
	n.isLeaf = false
}

// Trie is a prefix tree of byte strings.
//
// A Trie is not safe for concurrent use. Callers that share one across
// goroutines must serialise access themselves.
type Trie struct {
	root *node

	// maxDepth is the length of the longest word ever inserted. It only sizes
	// the scratch buffer used while enumerating matches.
	maxDepth int
}

// New creates a new empty trie
func New() *Trie {
	return &Trie{
		root: newNode(rootID),
	}
}

// Destroy releases every node in the trie. It consumes the trie: afterwards
// Insert reports false and lookups find nothing. Destroy is meant to be
// called once; a second call does nothing.
func (t *Trie) Destroy() {
	if t == nil || t.root == nil {
		return
	}
	t.root.release()
	t.root = nil
	t.maxDepth = 0
}

// alive reports whether t can be read or written
func (t *Trie) alive() bool {
	return t != nil && t.root != nil
}

// MaxDepth returns the length in bytes of the longest word ever inserted.
func (t *Trie) MaxDepth() int {
	if !t.alive() {
		return 0
	}
	return t.maxDepth
}

// Len returns the number of distinct words stored in the trie.
func (t *Trie) Len() int {
	if !t.alive() {
		return 0
	}
	count := 0
	countLeaves(t.root, &count)
	return count
}

func countLeaves(n *node, count *int) {
	if n.isLeaf {
		*count++
	}
	for _, c := range n.children {
		countLeaves(c, count)
	}
}

// NodeCount returns the total number of nodes in the trie, root included.
func (t *Trie) NodeCount() int {
	if !t.alive() {
		return 0
	}
	count := 0
	countNodes(t.root, &count)
	return count
}

func countNodes(n *node, count *int) {
	*count++
	for _, c := range n.children {
		countNodes(c, count)
	}
}
