package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/shared/telemetry"
)

// HTTPSResponse carries the HTTP status envelope inside an error body.
type HTTPSResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	HTTPSResponse HTTPSResponse `json:"https_response"`
	Message       string        `json:"message"`
	Details       string        `json:"details"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewError builds a fresh error body for status. The status line message is
// derived from the status code.
func NewError(status int, message, details string) ErrorBody {
	return ErrorBody{
		HTTPSResponse: HTTPSResponse{Message: StatusMessage(status), Code: status},
		Message:       message,
		Details:       details,
	}
}

// StatusMessage returns the short envelope message for status.
func StatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusTooManyRequests:
		return "Too many requests"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return http.StatusText(status)
	}
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, message, details string) {
	Abort(c, NewError(status, message, details))
}

// Internal sends a 500 whose envelope message includes the backend error text.
func Internal(c *gin.Context, err error, message, details string) {
	body := NewError(http.StatusInternalServerError, message, details)
	if err != nil {
		body.HTTPSResponse.Message = body.HTTPSResponse.Message + ": " + err.Error()
	}
	Abort(c, body)
}

// Abort logs and writes body using its own status code.
func Abort(c *gin.Context, body ErrorBody) {
	fields := map[string]any{
		"status":     body.HTTPSResponse.Code,
		"message":    body.Message,
		"details":    body.Details,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if body.HTTPSResponse.Code >= http.StatusInternalServerError {
		fields["cause"] = body.HTTPSResponse.Message
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Info("http.error", fields)
	}

	c.AbortWithStatusJSON(body.HTTPSResponse.Code, ErrorResponse{Error: body})
}
