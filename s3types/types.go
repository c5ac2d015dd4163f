// Package s3types provides shared type definitions for the S3 helper module.
package s3types

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/s3api"
)

// Defaults applied when the caller does not supply a value.
const (
	// DefaultRegion is used when neither options nor the environment provide a region.
	DefaultRegion = "us-east-1"

	// DefaultACL is applied to PutObject when no ACL is given.
	DefaultACL = ACLBucketOwnerFullControl

	// DefaultContentEncoding is applied to PutObject when no encoding is given.
	DefaultContentEncoding = "utf-8"

	// DefaultContentType is used when content type detection fails.
	DefaultContentType = "application/octet-stream"

	// DefaultSignedURLExpiry is the lifetime of a signed URL when none is given.
	DefaultSignedURLExpiry = 5 * time.Minute
)

// ObjectACL represents the canned access control list for S3 objects.
type ObjectACL string

// Predefined object ACLs
const (
	// ACLPrivate grants the owner full control and no one else access
	ACLPrivate ObjectACL = "private"

	// ACLPublicRead grants public read access
	ACLPublicRead ObjectACL = "public-read"

	// ACLPublicReadWrite grants public read and write access
	ACLPublicReadWrite ObjectACL = "public-read-write"

	// ACLAuthenticatedRead grants authenticated users read access
	ACLAuthenticatedRead ObjectACL = "authenticated-read"

	// ACLAWSExecRead grants EC2 read access for AMI bundles
	ACLAWSExecRead ObjectACL = "aws-exec-read"

	// ACLBucketOwnerRead grants bucket owner read access
	ACLBucketOwnerRead ObjectACL = "bucket-owner-read"

	// ACLBucketOwnerFullControl grants bucket owner full control
	ACLBucketOwnerFullControl ObjectACL = "bucket-owner-full-control"
)

// ClientConfig holds configuration for the S3 helper.
type ClientConfig struct {
	Region          string
	Endpoint        string
	MaxRetries      int
	Timeout         time.Duration
	ForcePathStyle  bool
	CustomAWSConfig *aws.Config
	Credentials     aws.CredentialsProvider
	Logger          *slog.Logger
	Filesystem      fs.Filesystem
	Presigner       s3api.Presigner
	HTTPClient      *http.Client
}

// PutOptionConfig holds configuration for put operations via functional options.
type PutOptionConfig struct {
	ACL             ObjectACL
	ContentEncoding string
	ContentType     string
	Metadata        map[string]string
}

// BucketOptionConfig holds configuration for bucket operations via functional options.
type BucketOptionConfig struct {
	Region string
}

type (
	// Option is a functional option for configuring the S3 helper.
	Option func(*ClientConfig)
	// PutOption is a functional option for configuring S3 put operations.
	PutOption func(*PutOptionConfig)
	// BucketOption is a functional option for configuring S3 bucket operations.
	BucketOption func(*BucketOptionConfig)
)
