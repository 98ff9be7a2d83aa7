package render

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"moviepreview/internal/services"
)

// User-facing messages shared by the web UI and the terminal client
const (
	EmptyQueryMessage = "Type a movie name da 😄"
	NotFoundMessage   = "No preview found 😕 Try: 1) Movie + Song name. Example: 'Leo Naa Ready'"
	NotFoundExample   = "Leo Naa Ready"
)

// Error codes returned in the "error" field
const (
	ErrorCodeEmptyQuery     = "empty_query"
	ErrorCodeTimeout        = "catalog_timeout"
	ErrorCodeUnreachable    = "catalog_unreachable"
	ErrorCodeUpstream       = "catalog_error"
	ErrorCodeInternal       = "internal_error"
	ErrorCodeInvalidRequest = "invalid_request"
)

// Checklist is shown with every catalog failure
var Checklist = []string{
	"Is the preview server running and reachable?",
	"Your network may block itunes.apple.com",
}

// PreviewFoundResponse is the body of a successful preview resolution
type PreviewFoundResponse struct {
	Found  bool                    `json:"found"`
	Result *services.PreviewResult `json:"result"`
}

// PreviewNotFoundResponse is the body when every stage came up empty
type PreviewNotFoundResponse struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Checklist []string `json:"checklist,omitempty"`
}

// Problem describes how an error is presented to a client
type Problem struct {
	Status   int
	Response ErrorResponse
}

// ProblemFor maps a resolution or catalog error onto a status and body.
// Input errors get 400, timeouts 504 and every other catalog failure 502.
func ProblemFor(err error) Problem {
	var (
		timeoutErr   *services.TimeoutError
		transportErr *services.TransportError
		upstreamErr  *services.UpstreamError
	)

	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		return Problem{
			Status:   http.StatusBadRequest,
			Response: ErrorResponse{Error: ErrorCodeEmptyQuery, Message: EmptyQueryMessage},
		}
	case errors.Is(err, services.ErrEmptyTerm):
		return Problem{
			Status:   http.StatusBadRequest,
			Response: ErrorResponse{Error: ErrorCodeInvalidRequest, Message: "term is required"},
		}
	case errors.As(err, &timeoutErr):
		return Problem{
			Status: http.StatusGatewayTimeout,
			Response: ErrorResponse{
				Error:     ErrorCodeTimeout,
				Message:   "The music catalog did not answer in time",
				Checklist: Checklist,
			},
		}
	case errors.As(err, &upstreamErr):
		return Problem{
			Status: http.StatusBadGateway,
			Response: ErrorResponse{
				Error:     ErrorCodeUpstream,
				Message:   fmt.Sprintf("The music catalog returned status %d", upstreamErr.Status),
				Checklist: Checklist,
			},
		}
	case errors.As(err, &transportErr):
		return Problem{
			Status: http.StatusBadGateway,
			Response: ErrorResponse{
				Error:     ErrorCodeUnreachable,
				Message:   "Could not reach the music catalog",
				Checklist: Checklist,
			},
		}
	default:
		return Problem{
			Status:   http.StatusInternalServerError,
			Response: ErrorResponse{Error: ErrorCodeInternal, Message: "Something went wrong"},
		}
	}
}

// RenderPreview writes a found or not-found preview response
func RenderPreview(c *gin.Context, result *services.PreviewResult) {
	if result == nil {
		c.JSON(http.StatusNotFound, PreviewNotFoundResponse{
			Found:   false,
			Message: NotFoundMessage,
		})
		return
	}

	c.JSON(http.StatusOK, PreviewFoundResponse{
		Found:  true,
		Result: result,
	})
}

// RenderError writes the problem for err
func RenderError(c *gin.Context, err error) {
	problem := ProblemFor(err)
	c.JSON(problem.Status, problem.Response)
}
