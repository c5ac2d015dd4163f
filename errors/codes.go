package errors

// ErrorCode classifies the failure behind an Error.
// Codes are string-based so they read well in logs and JSON.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates the bucket, object, or upload does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the bucket already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeConflict indicates a resource state conflict, such as deleting a non-empty bucket.
	CodeConflict ErrorCode = "CONFLICT"

	// Permission errors.

	// CodeUnauthorized indicates missing or invalid credentials.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeForbidden indicates the credentials lack permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates a caller-supplied argument was rejected before or by S3.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates the client could not be configured.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Infrastructure errors.

	// CodeTimeout indicates the operation exceeded its deadline.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeRateLimit indicates S3 asked the caller to slow down.
	CodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"

	// CodeUnavailable indicates the service is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// System errors.

	// CodeInternal indicates S3 reported an internal error.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates the failure could not be classified.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// apiCodes maps S3 error codes, as reported by smithy.APIError, to an ErrorCode.
var apiCodes = map[string]ErrorCode{
	"NotFound":                CodeNotFound,
	"NoSuchKey":               CodeNotFound,
	"NoSuchBucket":            CodeNotFound,
	"NoSuchUpload":            CodeNotFound,
	"NoSuchTagSet":            CodeNotFound,
	"BucketAlreadyExists":     CodeAlreadyExists,
	"BucketAlreadyOwnedByYou": CodeAlreadyExists,
	"BucketNotEmpty":          CodeConflict,
	"OperationAborted":        CodeConflict,
	"InvalidAccessKeyId":      CodeUnauthorized,
	"SignatureDoesNotMatch":   CodeUnauthorized,
	"ExpiredToken":            CodeUnauthorized,
	"AccessDenied":            CodeForbidden,
	"Forbidden":               CodeForbidden,
	"InvalidBucketName":       CodeInvalidInput,
	"InvalidArgument":         CodeInvalidInput,
	"InvalidPart":             CodeInvalidInput,
	"InvalidPartOrder":        CodeInvalidInput,
	"EntityTooSmall":          CodeInvalidInput,
	"EntityTooLarge":          CodeInvalidInput,
	"MalformedXML":            CodeInvalidInput,
	"RequestTimeout":          CodeTimeout,
	"SlowDown":                CodeRateLimit,
	"ServiceUnavailable":      CodeUnavailable,
	"InternalError":           CodeInternal,
}

// CodeForAPIError returns the ErrorCode for an S3 API error code.
func CodeForAPIError(apiCode string) ErrorCode {
	if code, ok := apiCodes[apiCode]; ok {
		return code
	}
	return CodeUnknown
}
