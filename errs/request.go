package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "unauthorized")
)

// Request & input-validation sentinels
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrValidation           = errors.New("validation failed")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrAccountLocked        = errors.New("account temporarily locked")
)

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

// NewValidationError bundles every missing or invalid field into a single
// error so callers can correct the whole request at once.
func NewValidationError(fields []FieldError) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Fields:     fields,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func NewUnsupportedMediaTypeError(mediaType string, allowedTypes []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsupportedMediaType,
		Details:    fmt.Sprintf("File type %s not allowed. Allowed types: %v", mediaType, allowedTypes),
		Field:      "file",
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("File size exceeds the maximum limit of %dMB", maxSize/(1024*1024)),
		Field:      "file",
	}
}

func NewTooManyRequestsError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrTooManyRequests,
		Details:    message,
	}
}

func NewAccountLockedError(remainingMinutes int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrAccountLocked,
		Details:    fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", remainingMinutes),
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsTooManyRequests(err error) bool {
	return errors.Is(err, ErrTooManyRequests)
}
