package s3helper

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the region from the credential chain, or us-east-1.
func WithRegion(region string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
func WithForcePathStyle(forcePathStyle bool) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithStaticCredentials uses a fixed access key instead of the default credential chain.
func WithStaticCredentials(accessKey, secretKey, sessionToken string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Credentials = credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)
	}
}

// WithMaxRetries sets the maximum number of attempts the SDK makes per request.
// Zero keeps the SDK default.
func WithMaxRetries(maxRetries int) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the HTTP client timeout for each S3 request.
// Ignored when WithHTTPClient is given.
func WithTimeout(timeout time.Duration) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithHTTPClient allows providing a custom HTTP client.
func WithHTTPClient(client *http.Client) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.HTTPClient = client
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(config *aws.Config) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithLogger sets the logger for the helper.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets the filesystem used by PutObjectFile and GetObjectToFile.
// If not specified, defaults to the OS filesystem rooted at /.
func WithFilesystem(filesystem fs.Filesystem) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithPresigner sets the signer used for signed URLs.
func WithPresigner(presigner s3api.Presigner) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Presigner = presigner
	}
}

// WithACL sets the canned ACL for put operations.
func WithACL(acl s3types.ObjectACL) s3types.PutOption {
	return func(c *s3types.PutOptionConfig) {
		c.ACL = acl
	}
}

// WithContentEncoding sets the Content-Encoding for put operations.
func WithContentEncoding(encoding string) s3types.PutOption {
	return func(c *s3types.PutOptionConfig) {
		c.ContentEncoding = encoding
	}
}

// WithContentType sets the content type for put operations.
func WithContentType(contentType string) s3types.PutOption {
	return func(c *s3types.PutOptionConfig) {
		c.ContentType = contentType
	}
}

// WithMetadata sets metadata for put operations.
func WithMetadata(metadata map[string]string) s3types.PutOption {
	return func(c *s3types.PutOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string)
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}

// WithBucketRegion sets the region a bucket is created in.
func WithBucketRegion(region string) s3types.BucketOption {
	return func(c *s3types.BucketOptionConfig) {
		c.Region = region
	}
}

// putConfig applies opts over the defaults.
func putConfig(opts []s3types.PutOption) *s3types.PutOptionConfig {
	cfg := &s3types.PutOptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if validation.IsBlank(string(cfg.ACL)) {
		cfg.ACL = s3types.DefaultACL
	}
	if validation.IsBlank(cfg.ContentEncoding) {
		cfg.ContentEncoding = s3types.DefaultContentEncoding
	}
	return cfg
}
