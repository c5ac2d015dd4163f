package s3helper

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

const (
	opCreateBucket      = "createBucket"
	opDeleteBucket      = "deleteBucket"
	opGetBucketMetadata = "getBucketMetadata"
)

// CreateBucket creates a new S3 bucket.
// The bucket name must be DNS-compliant and unique across all existing bucket names in S3.
// Use WithBucketRegion to create the bucket outside us-east-1.
//
// Bucket naming rules:
//   - Must be 3-63 characters long
//   - Can only contain lowercase letters, numbers, dots (.), and hyphens (-)
//   - Must begin and end with a letter or number
//   - Must not contain two adjacent periods or be formatted as an IP address
//
// Errors:
//   - ErrInvalidInput: If the name is empty or whitespace
//   - ErrInvalidBucketName: If the name doesn't comply with naming rules
//   - AWS SDK errors wrapped in Error type (BucketAlreadyExists maps to CodeAlreadyExists)
//
// Example:
//
//	_, err := helper.CreateBucket(ctx, "my-new-bucket",
//	    s3helper.WithBucketRegion("us-west-2"),
//	)
func (h *Helper) CreateBucket(
	ctx context.Context,
	name string,
	opts ...s3types.BucketOption,
) (*s3.CreateBucketOutput, error) {
	h.logInputs(ctx, opCreateBucket, "name", name)

	if err := validation.ValidateBucketName(opCreateBucket, name); err != nil {
		return nil, err
	}

	cfg := &s3types.BucketOptionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(name),
	}

	// us-east-1 rejects an explicit LocationConstraint.
	if cfg.Region != "" && cfg.Region != s3types.DefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(cfg.Region),
		}
	}

	output, err := send(ctx, h, opCreateBucket, input, h.api.CreateBucket)
	if err != nil {
		return nil, s3errors.FromAWS(opCreateBucket, err).WithBucket(name)
	}
	return output, nil
}

// DeleteBucket deletes an S3 bucket. The bucket must be empty.
func (h *Helper) DeleteBucket(ctx context.Context, name string) (*s3.DeleteBucketOutput, error) {
	h.logInputs(ctx, opDeleteBucket, "name", name)

	if err := validation.Required(opDeleteBucket, "name", name); err != nil {
		return nil, err
	}

	input := &s3.DeleteBucketInput{
		Bucket: aws.String(name),
	}

	output, err := send(ctx, h, opDeleteBucket, input, h.api.DeleteBucket)
	if err != nil {
		return nil, s3errors.FromAWS(opDeleteBucket, err).WithBucket(name)
	}
	return output, nil
}

// GetBucketMetadata returns the HeadBucket response for bucket.
func (h *Helper) GetBucketMetadata(ctx context.Context, bucket string) (*s3.HeadBucketOutput, error) {
	h.logInputs(ctx, opGetBucketMetadata, "bucket", bucket)

	if err := validation.Required(opGetBucketMetadata, "bucket", bucket); err != nil {
		return nil, err
	}

	input := &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	}

	output, err := send(ctx, h, opGetBucketMetadata, input, h.api.HeadBucket)
	if err != nil {
		return nil, s3errors.FromAWS(opGetBucketMetadata, err).WithBucket(bucket)
	}
	return output, nil
}
