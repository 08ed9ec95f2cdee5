// Package collections contains generic containers.
package collections

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/wandb/dlist/internal/observability/wberrors"
)

// ErrIndexOutOfRange is matched (via errors.Is) by every error returned for
// a position argument outside the range an operation accepts.
var ErrIndexOutOfRange error = wberrors.Newf("index out of range")

// ErrEmptyList is matched by errors from Front and Back on an empty list.
var ErrEmptyList error = wberrors.Newf("list is empty")

// DoublyLinkedList is a linked list where each node has a pointer to
// the previous and next nodes.
//
// The list exclusively owns its nodes: they are never handed out, so a node
// can only be unlinked by the list that created it. The zero value is an
// empty list.
//
// A list must not be copied by value since the copy would share nodes with
// the original; use Clone or Assign instead.
//
// It is not safe for concurrent use.
type DoublyLinkedList[T comparable] struct {
	// first is the node at index 0, or nil if the list is empty.
	first *doublyLinkedListNode[T]

	// last is the node at index length-1, or nil if the list is empty.
	last *doublyLinkedListNode[T]

	// length is the number of nodes in the list.
	length int
}

type doublyLinkedListNode[T comparable] struct {
	value T
	prev  *doublyLinkedListNode[T] // the previous node (if any)
	next  *doublyLinkedListNode[T] // the next node (if any)
}

// NewDoublyLinkedList returns a list holding the given values in order.
func NewDoublyLinkedList[T comparable](values ...T) *DoublyLinkedList[T] {
	list := &DoublyLinkedList[T]{}
	for _, v := range values {
		list.PushBack(v)
	}
	return list
}

// Clone returns a deep copy of the list.
//
// The copy has its own nodes; mutating one list never affects the other.
func (list *DoublyLinkedList[T]) Clone() *DoublyLinkedList[T] {
	clone := &DoublyLinkedList[T]{}
	clone.copyNodes(list)
	return clone
}

// Assign replaces the contents of the list by a copy of other's.
//
// Assigning a list to itself does nothing.
func (list *DoublyLinkedList[T]) Assign(other *DoublyLinkedList[T]) {
	if list == other {
		return
	}

	list.Clear()
	list.copyNodes(other)
}

func (list *DoublyLinkedList[T]) copyNodes(other *DoublyLinkedList[T]) {
	for node := other.first; node != nil; node = node.next {
		list.PushBack(node.value)
	}
}

// Clear removes every item from the list.
func (list *DoublyLinkedList[T]) Clear() {
	for list.first != nil {
		list.unlink(list.first)
	}
}

// PushFront adds the item to the start of the list.
func (list *DoublyLinkedList[T]) PushFront(t T) {
	node := &doublyLinkedListNode[T]{value: t, next: list.first}

	if list.first == nil {
		list.last = node
	} else {
		list.first.prev = node
	}

	list.first = node
	list.length++
}

// PushBack adds the item to the end of the list.
func (list *DoublyLinkedList[T]) PushBack(t T) {
	node := &doublyLinkedListNode[T]{value: t, prev: list.last}

	if list.last == nil {
		list.first = node
	} else {
		list.last.next = node
	}

	list.last = node
	list.length++
}

// Insert adds the item so that it ends up at the given index, shifting
// the items at and after it back by one.
//
// The index must be between 0 and Len() inclusive; inserting at Len()
// is the same as PushBack. Otherwise, the list is unchanged and the
// returned error matches ErrIndexOutOfRange.
func (list *DoublyLinkedList[T]) Insert(index int, t T) error {
	if index < 0 || index > list.length {
		return list.outOfRange("insert", index)
	}

	next := list.nodeAt(index)
	switch {
	case next == nil:
		list.PushBack(t)
	case next == list.first:
		list.PushFront(t)
	default:
		node := &doublyLinkedListNode[T]{value: t, prev: next.prev, next: next}
		next.prev.next = node
		next.prev = node
		list.length++
	}

	return nil
}

// Erase removes the first item equal to t and reports whether there was one.
//
// Later items equal to t are left in place. Erasing a missing item is
// not an error.
func (list *DoublyLinkedList[T]) Erase(t T) bool {
	for node := list.first; node != nil; node = node.next {
		if node.value == t {
			list.unlink(node)
			return true
		}
	}

	return false
}

// EraseAt removes the item at the given index and returns it.
//
// The index must be less than Len(). Otherwise, the list is unchanged
// and the returned error matches ErrIndexOutOfRange.
func (list *DoublyLinkedList[T]) EraseAt(index int) (T, error) {
	if index < 0 || index >= list.length {
		var zero T
		return zero, list.outOfRange("erase", index)
	}

	node := list.nodeAt(index)
	list.unlink(node)
	return node.value, nil
}

// Find reports whether the list contains an item equal to t.
func (list *DoublyLinkedList[T]) Find(t T) bool {
	for node := list.first; node != nil; node = node.next {
		if node.value == t {
			return true
		}
	}

	return false
}

// At returns the item at the given index.
//
// The returned error matches ErrIndexOutOfRange if the index is not
// less than Len().
func (list *DoublyLinkedList[T]) At(index int) (T, error) {
	if index < 0 || index >= list.length {
		var zero T
		return zero, list.outOfRange("at", index)
	}

	return list.nodeAt(index).value, nil
}

// Front returns the first item, or an error matching ErrEmptyList.
func (list *DoublyLinkedList[T]) Front() (T, error) {
	if list.first == nil {
		var zero T
		return zero, wberrors.Bubblef(ErrEmptyList, "collections: front").
			SkipSentryIf(true)
	}

	return list.first.value, nil
}

// Back returns the last item, or an error matching ErrEmptyList.
func (list *DoublyLinkedList[T]) Back() (T, error) {
	if list.last == nil {
		var zero T
		return zero, wberrors.Bubblef(ErrEmptyList, "collections: back").
			SkipSentryIf(true)
	}

	return list.last.value, nil
}

// Len returns the number of items in the list.
func (list *DoublyLinkedList[T]) Len() int {
	return list.length
}

// Empty reports whether the list has no items.
func (list *DoublyLinkedList[T]) Empty() bool {
	return list.length == 0
}

// Iter iterates over the list from first to last.
//
// This is intended to be used with for-range syntax in Go 1.23.
// The list must not be modified during iteration.
func (list *DoublyLinkedList[T]) Iter() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		node := list.first
		for node != nil {
			if !yield(i, node.value) {
				return
			}

			node = node.next
			i++
		}
	}
}

// ToSlice returns the items in order.
func (list *DoublyLinkedList[T]) ToSlice() []T {
	items := make([]T, 0, list.length)
	for _, t := range list.Iter() {
		items = append(items, t)
	}
	return items
}

// String renders the list as "< a, b, c >", or "<  >" if it's empty.
func (list *DoublyLinkedList[T]) String() string {
	var sb strings.Builder

	sb.WriteString("< ")
	for node := list.first; node != nil; node = node.next {
		fmt.Fprint(&sb, node.value)
		if node.next != nil {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(" >")

	return sb.String()
}

// nodeAt returns the node at the index, or nil if index == length.
//
// The walk starts from whichever end is closer.
func (list *DoublyLinkedList[T]) nodeAt(index int) *doublyLinkedListNode[T] {
	if index >= list.length {
		return nil
	}

	if index <= list.length/2 {
		node := list.first
		for range index {
			node = node.next
		}
		return node
	}

	node := list.last
	for i := list.length - 1; i > index; i-- {
		node = node.prev
	}
	return node
}

// unlink removes the node from the list and drops its links.
func (list *DoublyLinkedList[T]) unlink(node *doublyLinkedListNode[T]) {
	if node.prev == nil {
		list.first = node.next
	} else {
		node.prev.next = node.next
	}

	if node.next == nil {
		list.last = node.prev
	} else {
		node.next.prev = node.prev
	}

	node.prev = nil
	node.next = nil
	list.length--
}

func (list *DoublyLinkedList[T]) outOfRange(op string, index int) error {
	return wberrors.Bubblef(ErrIndexOutOfRange,
		"collections: %s: index %d, length %d",
		op, index, list.length).
		Attr(slog.Int("index", index)).
		Attr(slog.Int("len", list.length)).
		SkipSentryIf(true)
}
