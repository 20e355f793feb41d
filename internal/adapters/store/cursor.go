package store

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// ErrBadCursor is returned when a page cursor cannot be decoded. Cursors are
// opaque to clients; any token not produced by a previous List call is bad.
var ErrBadCursor = errors.New("malformed page cursor")

// pageCursor marks the last record of a page. Listing resumes strictly after
// it in (created_at, id) descending order.
type pageCursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"ts"`
}

func encodeCursor(id string, createdAt time.Time) string {
	raw, err := json.Marshal(pageCursor{ID: id, CreatedAt: createdAt})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string) (pageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return pageCursor{}, ErrBadCursor
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return pageCursor{}, ErrBadCursor
	}
	if c.ID == "" {
		return pageCursor{}, ErrBadCursor
	}
	return c, nil
}
