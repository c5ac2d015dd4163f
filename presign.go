package s3helper

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

const (
	opGetSignedURLDownload = "getSignedURLDownload"
	opGetSignedURLUpload   = "getSignedURLUpload"
)

// GetSignedURLDownload returns a presigned GET URL for an object.
// A non-positive expiry means five minutes.
func (h *Helper) GetSignedURLDownload(
	ctx context.Context,
	bucket, key string,
	expiry time.Duration,
) (string, error) {
	h.logInputs(ctx, opGetSignedURLDownload, "bucket", bucket, "key", key, "expiry", expiry)

	if err := validation.RequiredAll(opGetSignedURLDownload, "bucket", bucket, "key", key); err != nil {
		return "", err
	}
	if h.presigner == nil {
		return "", s3errors.NewObjectError(opGetSignedURLDownload, bucket, key, s3errors.ErrNoPresigner)
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	h.logRequest(ctx, opGetSignedURLDownload, input)

	request, err := h.presigner.PresignGetObject(ctx, input, s3.WithPresignExpires(signedURLExpiry(expiry)))
	if err != nil {
		h.logError(ctx, opGetSignedURLDownload, err)
		return "", s3errors.FromAWS(opGetSignedURLDownload, err).WithBucket(bucket).WithKey(key)
	}

	h.logResponse(ctx, opGetSignedURLDownload, request.URL)
	return request.URL, nil
}

// GetSignedURLUpload returns a presigned PUT URL for an object.
// A non-positive expiry means five minutes. A non-blank acl is signed into
// the URL, so the uploader must send the matching x-amz-acl header.
func (h *Helper) GetSignedURLUpload(
	ctx context.Context,
	bucket, key string,
	expiry time.Duration,
	acl s3types.ObjectACL,
) (string, error) {
	h.logInputs(ctx, opGetSignedURLUpload, "bucket", bucket, "key", key, "expiry", expiry, "acl", acl)

	if err := validation.RequiredAll(opGetSignedURLUpload, "bucket", bucket, "key", key); err != nil {
		return "", err
	}
	if err := validation.ValidateACL(opGetSignedURLUpload, string(acl)); err != nil {
		return "", err
	}
	if h.presigner == nil {
		return "", s3errors.NewObjectError(opGetSignedURLUpload, bucket, key, s3errors.ErrNoPresigner)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if !validation.IsBlank(string(acl)) {
		input.ACL = types.ObjectCannedACL(acl)
	}
	h.logRequest(ctx, opGetSignedURLUpload, input)

	request, err := h.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(signedURLExpiry(expiry)))
	if err != nil {
		h.logError(ctx, opGetSignedURLUpload, err)
		return "", s3errors.FromAWS(opGetSignedURLUpload, err).WithBucket(bucket).WithKey(key)
	}

	h.logResponse(ctx, opGetSignedURLUpload, request.URL)
	return request.URL, nil
}

func signedURLExpiry(expiry time.Duration) time.Duration {
	if expiry <= 0 {
		return s3types.DefaultSignedURLExpiry
	}
	return expiry
}
