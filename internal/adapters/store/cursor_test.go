package store

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
	token := encodeCursor("abc-123", ts)
	if token == "" {
		t.Fatal("encode returned empty token")
	}

	c, err := decodeCursor(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if c.ID != "abc-123" {
		t.Errorf("id = %q, want abc-123", c.ID)
	}
	if !c.CreatedAt.Equal(ts) {
		t.Errorf("created_at = %v, want %v", c.CreatedAt, ts)
	}
}

func TestCursorRejectsGarbage(t *testing.T) {
	for _, token := range []string{"%%%", "bm90LWpzb24", "e30"} { // junk, "not-json", "{}"
		if _, err := decodeCursor(token); err != ErrBadCursor {
			t.Errorf("decode(%q) err = %v, want ErrBadCursor", token, err)
		}
	}
}
