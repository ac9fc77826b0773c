package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToastsExpire(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ts := newToasts()
	ts.now = func() time.Time { return now }

	ts.info("saved")
	now = now.Add(time.Second)
	ts.error("unsupported format")
	assert.Len(t, ts.active(), 2)

	now = now.Add(toastDuration - time.Second)
	items := ts.active()
	assert.Len(t, items, 1)
	assert.Equal(t, "unsupported format", items[0].text)
	assert.Equal(t, toastError, items[0].level)

	now = now.Add(time.Second)
	assert.Empty(t, ts.active())
}

func TestToastsKeepNewest(t *testing.T) {
	ts := newToasts()
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		ts.info(s)
	}
	items := ts.active()
	assert.Len(t, items, 5)
	assert.Equal(t, "c", items[0].text)
	assert.Equal(t, "g", items[4].text)
}
