// Package v1 implements the version 1 HTTP API.
package v1

import (
	"encoding/json"
	"net/http"

	"github.com/helixml/chickenrescue/infrastructure/api/middleware"
	"github.com/helixml/chickenrescue/infrastructure/api/v1/dto"
)

// maxBodyBytes bounds request bodies; a full position list is about 11 MB.
const maxBodyBytes = 16 << 20

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, req *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return middleware.BadRequest("invalid request body", err)
	}
	return dto.Validate(v)
}
