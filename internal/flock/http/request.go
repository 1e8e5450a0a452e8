package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
)

// decode reads the JSON body into dst, writing the 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}

// pageFrom reads ?limit= and ?offset=. Garbage is a validation error rather
// than silently ignored.
func pageFrom(r *http.Request) (domain.Page, error) {
	q := r.URL.Query()
	var (
		p      domain.Page
		fields = map[string]string{}
	)

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["limit"] = "must be a non-negative integer"
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fields["offset"] = "must be a non-negative integer"
		}
		p.Offset = n
	}

	if len(fields) > 0 {
		return domain.Page{}, &service.ValidationError{Fields: fields}
	}
	return p.Normalize(), nil
}
