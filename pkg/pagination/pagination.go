// Package pagination implements the shared offset/limit page math used by
// every list endpoint. Offsets are opaque plain integers: clients pass the
// returned next/previous values back unchanged on the following request.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/xenking/storefront-api/internal/apperror"
)

const (
	// DefaultLimit is used when the client omits the limit parameter.
	DefaultLimit = 10
	// MaxLimit is the largest page size a client may request.
	MaxLimit = 100
)

// Page describes the window of a list response. Limit is the count of items
// actually returned, which may be less than the requested limit on the last
// page. Next and Previous are nil when there is no page in that direction.
type Page struct {
	Next     *int
	Limit    int
	Previous *int
}

// New computes page info from the request window, the total number of
// matching items, and the number of items actually returned.
func New(offset, limit, total, returned int) Page {
	p := Page{Limit: returned}
	if next := offset + limit; next < total {
		p.Next = &next
	}
	if offset > 0 {
		prev := max(0, offset-limit)
		p.Previous = &prev
	}
	return p
}

// Validate checks the window bounds shared by all list operations.
func Validate(limit, offset int) error {
	if limit <= 0 || limit > MaxLimit {
		return apperror.Validation("Limit must be between 1 and %d", MaxLimit)
	}
	if offset < 0 {
		return apperror.Validation("Offset must be non-negative")
	}
	return nil
}

// ParamsFromQuery extracts limit and offset from URL query values, applying
// defaults for absent parameters. Non-integer values are rejected.
func ParamsFromQuery(q url.Values) (limit, offset int, err error) {
	limit = DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperror.Validation("Limit must be an integer")
		}
	}
	offset = 0
	if raw := q.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperror.Validation("Offset must be an integer")
		}
	}
	return limit, offset, nil
}
