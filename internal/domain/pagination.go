package domain

import (
	"encoding/base64"
	"strconv"
)

// DefaultPageSize applies when a list request gives no size.
const DefaultPageSize = 50

// MaxPageSize caps list requests.
const MaxPageSize = 500

// PageRequest holds pagination parameters for local list operations.
type PageRequest struct {
	MaxResults int
	PageToken  string // base64-encoded offset
}

// Offset decodes the page token. Invalid tokens start from the beginning.
func (p PageRequest) Offset() int {
	if p.PageToken == "" {
		return 0
	}
	raw, err := base64.RawURLEncoding.DecodeString(p.PageToken)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Limit returns the page size clamped to [1, MaxPageSize].
func (p PageRequest) Limit() int {
	switch {
	case p.MaxResults <= 0:
		return DefaultPageSize
	case p.MaxResults > MaxPageSize:
		return MaxPageSize
	default:
		return p.MaxResults
	}
}

// NextPageToken returns the token for the page after offset+limit, or ""
// when total has been reached.
func NextPageToken(offset, limit int, total int64) string {
	next := offset + limit
	if int64(next) >= total {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(next)))
}
