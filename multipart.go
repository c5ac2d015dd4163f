package s3helper

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/multipart"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

const (
	opMultipartUploadStart    = "multipartUploadStart"
	opMultipartUploadPart     = "multipartUploadPart"
	opMultipartUploadComplete = "multipartUploadComplete"
	opMultipartUploadAbort    = "multipartUploadAbort"
)

// MultipartUploadStart initiates a multipart upload and returns its UploadId.
// A blank acl leaves the ACL unset.
func (h *Helper) MultipartUploadStart(
	ctx context.Context,
	bucket, key string,
	acl s3types.ObjectACL,
) (*s3.CreateMultipartUploadOutput, error) {
	h.logInputs(ctx, opMultipartUploadStart, "bucket", bucket, "key", key, "acl", acl)

	if err := validation.RequiredAll(opMultipartUploadStart, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}
	if err := validation.ValidateObjectKey(opMultipartUploadStart, "key", key); err != nil {
		return nil, err
	}
	if err := validation.ValidateACL(opMultipartUploadStart, string(acl)); err != nil {
		return nil, err
	}

	input := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if !validation.IsBlank(string(acl)) {
		input.ACL = types.ObjectCannedACL(acl)
	}

	output, err := send(ctx, h, opMultipartUploadStart, input, h.api.CreateMultipartUpload)
	if err != nil {
		return nil, s3errors.FromAWS(opMultipartUploadStart, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// MultipartUploadPart uploads one part of a multipart upload.
//
// partNumber must be between 1 and 10000. contents must be between
// 5,000,000 and 10,000,000,000 bytes inclusive; S3 itself allows a smaller
// last part, which this method does not.
//
// Errors:
//   - ErrInvalidInput: If an argument is empty or partNumber is out of range
//   - ErrInvalidPartSize: If contents is outside the size window
//   - AWS SDK errors wrapped in Error type
func (h *Helper) MultipartUploadPart(
	ctx context.Context,
	bucket, key, uploadID string,
	partNumber int32,
	contents []byte,
) (*s3.UploadPartOutput, error) {
	h.logInputs(ctx, opMultipartUploadPart,
		"bucket", bucket,
		"key", key,
		"uploadId", uploadID,
		"partNumber", partNumber,
		"size", len(contents))

	if err := validation.RequiredAll(opMultipartUploadPart,
		"bucket", bucket,
		"key", key,
		"uploadId", uploadID,
	); err != nil {
		return nil, err
	}
	if err := multipart.CheckPartNumber(opMultipartUploadPart, partNumber); err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, s3errors.MissingParameter(opMultipartUploadPart, "contents")
	}
	if err := multipart.CheckPartSize(opMultipartUploadPart, int64(len(contents))); err != nil {
		return nil, err
	}

	input := &s3.UploadPartInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		UploadId:      aws.String(uploadID),
		PartNumber:    aws.Int32(partNumber),
		Body:          bytes.NewReader(contents),
		ContentLength: aws.Int64(int64(len(contents))),
	}

	output, err := send(ctx, h, opMultipartUploadPart, input, h.api.UploadPart)
	if err != nil {
		return nil, s3errors.FromAWS(opMultipartUploadPart, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// MultipartUploadComplete completes a multipart upload.
// When no parts are given, the uploaded parts are listed from S3. Parts are
// sent in ascending part-number order.
func (h *Helper) MultipartUploadComplete(
	ctx context.Context,
	bucket, key, uploadID string,
	parts ...types.CompletedPart,
) (*s3.CompleteMultipartUploadOutput, error) {
	h.logInputs(ctx, opMultipartUploadComplete,
		"bucket", bucket,
		"key", key,
		"uploadId", uploadID,
		"parts", len(parts))

	if err := validation.RequiredAll(opMultipartUploadComplete,
		"bucket", bucket,
		"key", key,
		"uploadId", uploadID,
	); err != nil {
		return nil, err
	}

	if len(parts) == 0 {
		listed, err := multipart.CollectParts(ctx, h.api, bucket, key, uploadID)
		if err != nil {
			h.logError(ctx, opMultipartUploadComplete, err)
			return nil, s3errors.FromAWS(opMultipartUploadComplete, err).WithBucket(bucket).WithKey(key)
		}
		parts = listed
	} else {
		parts = append([]types.CompletedPart(nil), parts...)
		multipart.SortParts(parts)
	}

	if len(parts) == 0 {
		return nil, s3errors.NewObjectError(opMultipartUploadComplete, bucket, key, s3errors.ErrInvalidInput).
			WithMessage("no parts uploaded for " + uploadID)
	}

	input := &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	}

	output, err := send(ctx, h, opMultipartUploadComplete, input, h.api.CompleteMultipartUpload)
	if err != nil {
		return nil, s3errors.FromAWS(opMultipartUploadComplete, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// MultipartUploadAbort aborts a multipart upload and frees its stored parts.
func (h *Helper) MultipartUploadAbort(
	ctx context.Context,
	bucket, key, uploadID string,
) (*s3.AbortMultipartUploadOutput, error) {
	h.logInputs(ctx, opMultipartUploadAbort, "bucket", bucket, "key", key, "uploadId", uploadID)

	if err := validation.RequiredAll(opMultipartUploadAbort,
		"bucket", bucket,
		"key", key,
		"uploadId", uploadID,
	); err != nil {
		return nil, err
	}

	input := &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	}

	output, err := send(ctx, h, opMultipartUploadAbort, input, h.api.AbortMultipartUpload)
	if err != nil {
		return nil, s3errors.FromAWS(opMultipartUploadAbort, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}
