package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
)

const (
	// MaxObjectKeyLength is the S3 limit for object keys, in bytes.
	MaxObjectKeyLength = 1024

	// MaxDeleteKeys is the number of keys S3 accepts in one DeleteObjects request.
	MaxDeleteKeys = 1000
)

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Required returns a MissingParameter error for op when value is blank.
func Required(op, param, value string) error {
	if IsBlank(value) {
		return errors.MissingParameter(op, param)
	}
	return nil
}

// RequiredAll checks name/value pairs in order and returns the first failure.
// Pairs are given as alternating parameter names and values.
func RequiredAll(op string, pairs ...string) error {
	if len(pairs)%2 != 0 {
		panic("validation.RequiredAll: odd number of arguments")
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := Required(op, pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBucketName validates that a bucket name is DNS-compliant according to S3 rules.
func ValidateBucketName(op, bucket string) error {
	if IsBlank(bucket) {
		return errors.MissingParameter(op, "name")
	}

	// Bucket names must be between 3 and 63 characters long
	if len(bucket) < 3 || len(bucket) > 63 {
		return invalidBucket(op, bucket, "bucket name must be between 3 and 63 characters long")
	}

	// Bucket names can consist only of lowercase letters, numbers, dots (.), and hyphens (-)
	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return invalidBucket(op, bucket,
				"bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	first, last := bucket[0], bucket[len(bucket)-1]
	if !isAlphanumeric(first) || !isAlphanumeric(last) {
		return invalidBucket(op, bucket, "bucket name must begin and end with a letter or number")
	}

	if strings.Contains(bucket, "..") {
		return invalidBucket(op, bucket, "bucket name cannot contain two adjacent periods")
	}

	if isIPAddress(bucket) {
		return invalidBucket(op, bucket, "bucket name cannot be formatted as an IP address")
	}

	if strings.HasPrefix(bucket, "xn--") || strings.HasSuffix(bucket, "-s3alias") {
		return invalidBucket(op, bucket, "bucket name uses a reserved prefix or suffix")
	}

	return nil
}

// ValidateObjectKey validates that an object key can be written to S3.
func ValidateObjectKey(op, param, key string) error {
	if IsBlank(key) {
		return errors.MissingParameter(op, param)
	}

	if len(key) > MaxObjectKeyLength {
		return invalidKey(op, key, fmt.Sprintf("%s cannot exceed %d bytes", param, MaxObjectKeyLength))
	}

	if hasControlCharacters(key) {
		return invalidKey(op, key, param+" cannot contain control characters")
	}

	return nil
}

// ValidateKeys checks a DeleteObjects key list.
func ValidateKeys(op string, keys []string) error {
	if len(keys) == 0 {
		return errors.MissingParameter(op, "at least one key")
	}
	for i, key := range keys {
		if IsBlank(key) {
			return errors.NewError(op, errors.ErrInvalidInput).
				WithMessage(fmt.Sprintf("key at index %d is empty", i))
		}
	}
	return nil
}

// ValidateACL validates that an ACL value is a known canned ACL.
// A blank ACL is allowed and means "use the default".
func ValidateACL(op, acl string) error {
	if IsBlank(acl) {
		return nil
	}

	validACLs := map[string]bool{
		"private":                   true,
		"public-read":               true,
		"public-read-write":         true,
		"authenticated-read":        true,
		"aws-exec-read":             true,
		"bucket-owner-read":         true,
		"bucket-owner-full-control": true,
	}

	if !validACLs[acl] {
		return errors.NewError(op, errors.ErrInvalidInput).
			WithMessage("unknown canned ACL " + acl)
	}

	return nil
}

// ValidateMetadata validates user metadata keys and values according to S3 rules.
func ValidateMetadata(op string, metadata map[string]string) error {
	for key, value := range metadata {
		if key == "" {
			return errors.NewError(op, errors.ErrInvalidInput).
				WithMessage("metadata key cannot be empty")
		}

		// Keys can only contain printable ASCII characters
		for _, char := range key {
			if char < 33 || char > 126 {
				return errors.NewError(op, errors.ErrInvalidInput).
					WithMessage("metadata key can only contain printable ASCII characters")
			}
		}

		if strings.HasPrefix(strings.ToLower(key), "x-amz-") {
			return errors.NewError(op, errors.ErrInvalidInput).
				WithMessage("metadata key cannot start with reserved prefix x-amz-")
		}

		for _, char := range value {
			if unicode.IsControl(char) {
				return errors.NewError(op, errors.ErrInvalidInput).
					WithMessage("metadata value cannot contain control characters")
			}
		}
	}

	return nil
}

func invalidBucket(op, bucket, msg string) error {
	return errors.NewError(op, errors.ErrInvalidBucketName).
		WithBucket(bucket).
		WithMessage(msg)
}

func invalidKey(op, key, msg string) error {
	return errors.NewError(op, errors.ErrInvalidObjectKey).
		WithKey(key).
		WithMessage(msg)
}

// isValidBucketChar checks if a character is valid in a bucket name
func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '.' || char == '-'
}

func isAlphanumeric(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z')
}

// isIPAddress checks if a string is formatted as an IPv4 address
func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		num := 0
		for _, char := range part {
			if char < '0' || char > '9' {
				return false
			}
			num = num*10 + int(char-'0')
		}
		if num > 255 {
			return false
		}
	}

	return true
}

// hasControlCharacters checks for control characters in the key
func hasControlCharacters(key string) bool {
	for _, char := range key {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}
