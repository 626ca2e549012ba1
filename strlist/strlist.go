// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package strlist

import "strings"

// List is an ordered sequence of owned strings.
// The zero value is an absent list. A List is not safe for concurrent use.
type List struct {
	items   []string
	present bool
}

// New returns a present list holding copies of items.
func New(items ...string) *List {
	l := &List{present: true, items: []string{}}
	l.AppendAll(items...)
	return l
}

// Count returns the number of elements in l. A nil or absent list has none.
func Count(l *List) int {
	return l.Len()
}

// Len returns the number of elements in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// IsAbsent reports whether the list has never been allocated or has been cleared.
func (l *List) IsAbsent() bool {
	return l == nil || !l.present
}

// Append copies item into a new slot at the end of the list.
// The backing array is reallocated to exactly fit the new length.
func (l *List) Append(item string) {
	next := make([]string, len(l.items)+1)
	copy(next, l.items)
	next[len(l.items)] = strings.Clone(item)
	l.items = next
	l.present = true
}

// AppendAll appends each item in order. It does nothing when items is empty.
func (l *List) AppendAll(items ...string) {
	for _, item := range items {
		l.Append(item)
	}
}

// Clear releases every element and the backing storage, leaving the list absent.
// Clearing an absent or nil list is a no-op.
func (l *List) Clear() {
	if l == nil {
		return
	}
	for i := range l.items {
		l.items[i] = ""
	}
	l.items = nil
	l.present = false
}

// At returns the element at index i.
func (l *List) At(i int) (string, bool) {
	if i < 0 || i >= l.Len() {
		return "", false
	}
	return l.items[i], true
}

// Strings returns a copy of the elements, or nil for an absent list.
func (l *List) Strings() []string {
	if l.IsAbsent() {
		return nil
	}
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
