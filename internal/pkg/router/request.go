package router

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ramadhaner/authapi/internal/pkg/goerror"
)

// Request wraps http.Request for inbound handlers. Every endpoint takes a
// JSON body, so decoding is the only helper handlers need.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// DecodeBody decodes the JSON body into dst. Unknown fields and trailing
// content are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}

	return nil
}
