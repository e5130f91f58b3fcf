package graphql

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const maxBodyBytes = 1 << 20

// NewHandler serves POST requests with a JSON Request body. Requests that
// fail to parse or validate answer 422; executed operations answer 200
// with field errors in the "errors" list.
func NewHandler(exec *Executor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			status, msg := http.StatusBadRequest, "invalid request body"
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status, msg = http.StatusRequestEntityTooLarge, "request body too large"
			}
			writeResponse(w, status, &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("%s", msg)}})
			return
		}

		resp := exec.Execute(r.Context(), req)
		status := http.StatusOK
		if resp.Data == nil {
			status = http.StatusUnprocessableEntity
		}
		writeResponse(w, status, resp)
	})
}

// SchemaHandler serves the schema source as plain text.
func SchemaHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, schemaSDL) //nolint:errcheck
	})
}

func writeResponse(w http.ResponseWriter, status int, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}
