package system

import (
	"testing"
	"time"
)

func TestNowIsCurrent(t *testing.T) {
	t.Parallel()

	c := New()
	before := time.Now().Add(-time.Second)
	got := c.Now()
	after := time.Now().Add(time.Second)
	if got.Before(before) || got.After(after) {
		t.Fatalf("Now() = %v outside expected window", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("Now() location = %v, want UTC", got.Location())
	}
}
