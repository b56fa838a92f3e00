package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tezexpress/courier-manager/internal/analytics"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorText:      err.Error(),
	}
}

// ErrComputation maps malformed input to 422: the request cannot succeed
// until the input is fixed, so retries are pointless.
func ErrComputation(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Malformed snapshot input.",
		ErrorText:      err.Error(),
	}
}

// renderError picks the response family for an engine error.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *analytics.ComputationError
	if errors.As(err, &ce) {
		render.Render(w, r, ErrComputation(err))
		return
	}
	render.Render(w, r, ErrInternalServerError(err))
}
