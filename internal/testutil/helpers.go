package testutil

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Values shared by the helper tests.
const (
	TestBucket   = "test-bucket"
	TestKey      = "folder/object.txt"
	TestUploadID = "upload-id-123"
	TestContents = "hello world"
	TestTagName  = "environment"
	TestTagValue = "test"
)

// ErrAWS is a plain failure returned by mocks when a test only needs the SDK call to fail.
var ErrAWS = errors.New("AWS Error")

// APIError returns an SDK-shaped error carrying an S3 error code.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message, Fault: smithy.FaultClient}
}

// GenerateRandomData generates random bytes of the specified size.
// This is useful for creating test data for uploads.
func GenerateRandomData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(rand.Intn(256))
	}
	return data
}

// GenerateTestKey generates a test S3 object key with optional prefix.
// This helps ensure test isolation by using unique keys.
func GenerateTestKey(prefix string) string {
	timestamp := time.Now().UnixNano()
	random := rand.Int63n(100000)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%stest-object-%d-%d", prefix, timestamp, random)
}

// GenerateTestBucketName generates a valid test bucket name.
// Bucket names must be DNS-compliant and globally unique.
func GenerateTestBucketName(prefix string) string {
	timestamp := time.Now().Unix()
	random := rand.Int31n(10000)
	name := fmt.Sprintf("%s-%d-%d", prefix, timestamp, random)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

// CalculateETag calculates the ETag S3 reports for a single-part upload of data.
func CalculateETag(data []byte) string {
	h := md5.Sum(data)
	return fmt.Sprintf(`"%x"`, h)
}

// CreateGetObjectOutput creates a GetObjectOutput whose body yields data.
func CreateGetObjectOutput(data []byte, contentType string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ETag:          aws.String(CalculateETag(data)),
		LastModified:  aws.Time(time.Now()),
	}
}

// TrackingBody is an io.ReadCloser that records whether it was closed.
type TrackingBody struct {
	io.Reader
	Closed bool
}

// NewTrackingBody returns a TrackingBody that reads data.
func NewTrackingBody(data []byte) *TrackingBody {
	return &TrackingBody{Reader: bytes.NewReader(data)}
}

// Close marks the body closed.
func (b *TrackingBody) Close() error {
	b.Closed = true
	return nil
}
