// Package selector keeps the ordered list of loaded items and the current
// selection shown in the sidebar.
package selector

// List is an ordered collection with one selected entry.
type List[T any] struct {
	items    []T
	selected int
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns the items in display order. The slice must not be modified.
func (l *List[T]) Items() []T { return l.items }

// Index returns the selected index, or -1 when the list is empty.
func (l *List[T]) Index() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.selected
}

// Selected returns the selected item.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	return l.items[l.selected], true
}

// Add appends item and selects it.
func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
	l.selected = len(l.items) - 1
}

// Select makes index i current. Out of range indices are ignored.
func (l *List[T]) Select(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.selected = i
	return true
}

// Next moves the selection down, wrapping to the first item.
func (l *List[T]) Next() {
	if n := len(l.items); n > 0 {
		l.selected = (l.selected + 1) % n
	}
}

// Prev moves the selection up, wrapping to the last item.
func (l *List[T]) Prev() {
	if n := len(l.items); n > 0 {
		l.selected = (l.selected + n - 1) % n
	}
}

// Remove deletes the item at i and returns it. The selection stays on the
// same item when possible, otherwise on its neighbour.
func (l *List[T]) Remove(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	switch {
	case i < l.selected:
		l.selected--
	case l.selected >= len(l.items) && len(l.items) > 0:
		l.selected = len(l.items) - 1
	case len(l.items) == 0:
		l.selected = 0
	}
	return item, true
}
