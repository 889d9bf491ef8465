package domain

import (
	"bytes"

	"github.com/google/btree"
)

// listDegree is the B-tree degree; sections hold tens of entries, not millions.
const listDegree = 8

// List is a key-unique set of entries iterated in ascending bytewise key order.
//
// The iteration order is part of the legacy on-disk format: encoding walks
// the list front to back, so stored sections are always key-sorted.
//
// A List is not safe for concurrent use.
type List struct {
	tree *btree.BTreeG[Entry]
}

func entryLess(a, b Entry) bool {
	return bytes.Compare(a.Key, b.Key) < 0
}

// NewList creates an empty list.
func NewList() *List {
	return &List{tree: btree.NewG[Entry](listDegree, entryLess)}
}

// Set inserts the entry, replacing any entry with the same key.
// It reports whether an existing entry was replaced.
func (l *List) Set(e Entry) bool {
	_, replaced := l.tree.ReplaceOrInsert(e)
	return replaced
}

// Get returns the entry stored under key.
func (l *List) Get(key []byte) (Entry, bool) {
	return l.tree.Get(Entry{Key: key})
}

// Delete removes the entry stored under key and reports whether it existed.
func (l *List) Delete(key []byte) bool {
	_, ok := l.tree.Delete(Entry{Key: key})
	return ok
}

// Len returns the number of entries.
func (l *List) Len() int {
	return l.tree.Len()
}

// Ascend calls fn for each entry in key order until fn returns false.
func (l *List) Ascend(fn func(e Entry) bool) {
	l.tree.Ascend(fn)
}

// Entries returns the entries in key order.
func (l *List) Entries() []Entry {
	out := make([]Entry, 0, l.tree.Len())
	l.tree.Ascend(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Clear removes all entries.
func (l *List) Clear() {
	l.tree.Clear(false)
}
