package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sellerverify/internal/http/middleware"
	"sellerverify/internal/service"
	"sellerverify/internal/verification"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// MissingDocuments lists required document ids when Code is MISSING_REQUIRED_DOCUMENTS.
	MissingDocuments []string `json:"missing_documents,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "SESSION_NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeServiceError maps service and checklist errors onto HTTP responses.
func writeServiceError(c *fiber.Ctx, err error) error {
	var missing *verification.MissingDocumentsError
	switch {
	case errors.As(err, &missing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorPayload{
			RequestID: requestIDFromCtx(c),
			Error: errorEnvelope{
				Code:             "MISSING_REQUIRED_DOCUMENTS",
				Message:          "Please upload all required documents to complete verification.",
				MissingDocuments: missing.DocumentIDs,
			},
		})
	case errors.Is(err, service.ErrSessionNotFound):
		return writeError(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "verification session not found")
	case errors.Is(err, service.ErrTooManySessions):
		return writeError(c, fiber.StatusTooManyRequests, "TOO_MANY_SESSIONS", "too many open verification sessions, try again later")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrSellerIDRequired):
		return writeError(c, fiber.StatusBadRequest, "SELLER_ID_REQUIRED", "seller_id is required")
	case errors.Is(err, verification.ErrUnknownDocument):
		return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found")
	case errors.Is(err, verification.ErrFileRequired):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.Is(err, verification.ErrUnsupportedFileType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "accepted types: pdf, jpg, jpeg, png, doc, docx")
	case errors.Is(err, verification.ErrSubmitDisabled):
		return writeError(c, fiber.StatusConflict, "SUBMIT_DISABLED", "submission is not available right now")
	case errors.Is(err, verification.ErrClosed):
		return writeError(c, fiber.StatusGone, "SESSION_CLOSED", "verification session is closed")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
