package texture

import (
	"fmt"
	"strings"
)

// Filter selects how a texture is sampled when magnified or minified.
type Filter int

const (
	Nearest Filter = iota
	Linear
)

// Filters lists every filter in display order.
var Filters = []Filter{Nearest, Linear}

func (f Filter) String() string {
	if f == Linear {
		return "Linear"
	}
	return "Nearest"
}

// ParseFilter accepts "nearest" or "linear" in any case.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return Nearest, nil
	case "linear":
		return Linear, nil
	}
	return Nearest, fmt.Errorf("unknown filter %q", s)
}

// Key returns the lowercase name used in configuration.
func (f Filter) Key() string { return strings.ToLower(f.String()) }
