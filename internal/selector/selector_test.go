package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func list(items ...string) *List[string] {
	l := &List[string]{}
	for _, it := range items {
		l.Add(it)
	}
	l.Select(0)
	return l
}

func TestEmpty(t *testing.T) {
	var l List[string]
	assert.Equal(t, -1, l.Index())
	_, ok := l.Selected()
	assert.False(t, ok)
	l.Next()
	l.Prev()
	_, ok = l.Remove(0)
	assert.False(t, ok)
}

func TestAddSelectsNewItem(t *testing.T) {
	var l List[string]
	l.Add("a.png")
	l.Add("b.obj")
	got, ok := l.Selected()
	assert.True(t, ok)
	assert.Equal(t, "b.obj", got)
	assert.Equal(t, 1, l.Index())
}

func TestWrap(t *testing.T) {
	l := list("a", "b", "c")
	l.Prev()
	assert.Equal(t, 2, l.Index())
	l.Next()
	assert.Equal(t, 0, l.Index())
	l.Next()
	assert.Equal(t, 1, l.Index())
}

func TestSelectOutOfRange(t *testing.T) {
	l := list("a", "b")
	assert.False(t, l.Select(2))
	assert.False(t, l.Select(-1))
	assert.Equal(t, 0, l.Index())
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		remove   int
		want     string
		items    []string
	}{
		{"before selection keeps item", 2, 0, "c", []string{"b", "c"}},
		{"after selection keeps item", 0, 2, "a", []string{"a", "b"}},
		{"selected moves to next", 1, 1, "c", []string{"a", "c"}},
		{"last selected moves back", 2, 2, "b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := list("a", "b", "c")
			l.Select(tt.selected)
			_, ok := l.Remove(tt.remove)
			assert.True(t, ok)
			got, _ := l.Selected()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.items, l.Items())
		})
	}
}

func TestRemoveLast(t *testing.T) {
	l := list("only")
	item, ok := l.Remove(0)
	assert.True(t, ok)
	assert.Equal(t, "only", item)
	assert.Zero(t, l.Len())
	assert.Equal(t, -1, l.Index())
}
