package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-api/internal/apperror"
	"github.com/xenking/storefront-api/pkg/pagination"
)

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError maps the domain error taxonomy to HTTP statuses. Validation
// failures and missing entities surface their detail strings; store failures
// and unexpected errors are logged and surface a generic detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	detail := "Internal server error"

	var (
		vErr  *apperror.ValidationError
		nfErr *apperror.NotFoundError
		dbErr *apperror.DatabaseError
	)
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
		detail = vErr.Detail
	case errors.As(err, &nfErr):
		status = http.StatusNotFound
		detail = nfErr.Detail
	case errors.As(err, &dbErr):
		detail = dbErr.Detail
		zctx.From(r.Context()).Error("Store operation failed", zap.Error(err))
	default:
		zctx.From(r.Context()).Error("Unhandled error", zap.Error(err))
	}

	writeDetail(w, status, detail)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("detail")
	e.Str(detail)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

func writeBadBody(w http.ResponseWriter) {
	writeDetail(w, http.StatusBadRequest, "Invalid request body")
}

func writeID(w http.ResponseWriter, id string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(id)
	e.ObjEnd()
	writeJSON(w, http.StatusCreated, &e)
}

func encodePage(e *jx.Encoder, p pagination.Page) {
	e.FieldStart("page")
	e.ObjStart()
	e.FieldStart("next")
	encodeOffset(e, p.Next)
	e.FieldStart("limit")
	e.Int(p.Limit)
	e.FieldStart("previous")
	encodeOffset(e, p.Previous)
	e.ObjEnd()
}

func encodeOffset(e *jx.Encoder, offset *int) {
	if offset == nil {
		e.Null()
		return
	}
	e.Int(*offset)
}
