// Package errors provides error types and handling for S3 helper operations.
package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Error represents an S3 operation error with context about the operation that failed.
// It wraps the underlying AWS SDK error without altering it, so errors.Is and errors.As
// still reach the SDK error.
type Error struct {
	// Op is the operation that failed (e.g., "copyObject", "putObject")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Code classifies the failure
	Code ErrorCode

	// Err is the underlying error from the AWS SDK or a sentinel
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithCode overrides the error classification.
func (e *Error) WithCode(code ErrorCode) *Error {
	e.Code = code
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
// The code is derived from the error: sentinels and SDK API errors are classified,
// anything else is CodeUnknown.
func NewError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Code: classify(err),
		Err:  err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return NewError(op, err).WithBucket(bucket)
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return NewError(op, err).WithBucket(bucket).WithKey(key)
}

// FromAWS wraps an SDK failure for op. The SDK error is kept as is so its
// message and type stay reachable; only the Code is derived from it.
// An err that is already an *Error is copied, so context added by the
// caller does not change the original.
func FromAWS(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		dup := *e
		return &dup
	}
	return NewError(op, err)
}

// MissingParameter returns the error used by every guard clause when a required
// argument is empty.
func MissingParameter(op, param string) *Error {
	return NewError(op, ErrInvalidInput).WithMessage("must supply " + param)
}

// Sentinel errors for common S3 operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("s3: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("s3: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("s3: access denied")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("s3: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("s3: invalid object key")

	// ErrInvalidPartSize indicates a multipart part outside the allowed size window
	ErrInvalidPartSize = errors.New("s3: invalid part size")

	// ErrInvalidCredentials indicates that the AWS credentials are invalid
	ErrInvalidCredentials = errors.New("s3: invalid credentials")

	// ErrNoPresigner indicates a signed URL was requested from a helper without a presigner
	ErrNoPresigner = errors.New("s3: no presigner configured")
)

// classify derives an ErrorCode from err.
func classify(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidBucketName),
		errors.Is(err, ErrInvalidObjectKey),
		errors.Is(err, ErrInvalidPartSize):
		return CodeInvalidInput
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrBucketNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAccessDenied):
		return CodeForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, ErrNoPresigner):
		return CodeInvalidConfig
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return CodeForAPIError(apiErr.ErrorCode())
	}

	var inner *Error
	if errors.As(err, &inner) {
		return inner.Code
	}

	return CodeUnknown
}

// CodeOf returns the ErrorCode carried by err, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return classify(err)
}

// APICode returns the S3 error code reported by the SDK, or "" when err does not
// carry one.
func APICode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotFound reports whether err indicates a missing bucket, object, or upload.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsObjectNotFound checks if an error indicates that an object was not found.
func IsObjectNotFound(err error) bool {
	if errors.Is(err, ErrObjectNotFound) {
		return true
	}
	code := APICode(err)
	return code == "NoSuchKey" || code == "NotFound"
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound) || APICode(err) == "NoSuchBucket"
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied) || CodeOf(err) == CodeForbidden
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return CodeOf(err) == CodeInvalidInput
}
