package response

import (
	"errors"

	"axiso-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusOK).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return c.Status(fiber.StatusCreated).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// FromError maps service errors onto the standard error format.
// Store failures are reported without their cause.
func FromError(c *fiber.Ctx, err error) error {
	status, message := Classify(err)
	return Error(c, message, status, nil)
}

// Classify returns the HTTP status and client-facing message for err.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPaymentMode),
		errors.Is(err, domain.ErrUnknownStage):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrExceedsBalance):
		return fiber.StatusUnprocessableEntity, domain.ErrExceedsBalance.Error()
	case errors.Is(err, domain.ErrRecordNotFound):
		return fiber.StatusNotFound, domain.ErrRecordNotFound.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrStaleState):
		return fiber.StatusConflict, domain.ErrStaleState.Error()
	case errors.Is(err, domain.ErrDuplicateRequest):
		return fiber.StatusConflict, domain.ErrDuplicateRequest.Error()
	case errors.Is(err, domain.ErrStoreFailure):
		return fiber.StatusServiceUnavailable, domain.ErrStoreFailure.Error()
	case errors.Is(err, domain.ErrMailDelivery):
		return fiber.StatusBadGateway, domain.ErrMailDelivery.Error()
	}
	return fiber.StatusInternalServerError, "Internal Server Error"
}
