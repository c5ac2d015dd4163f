package s3helper

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/validation"
)

const (
	opDeleteObjectTags = "deleteObjectTags"
	opGetObjectTags    = "getObjectTags"
	opSetObjectTag     = "setObjectTag"
	opSetObjectTags    = "setObjectTags"
)

// DeleteObjectTags removes every tag from an object.
func (h *Helper) DeleteObjectTags(ctx context.Context, bucket, key string) (*s3.DeleteObjectTaggingOutput, error) {
	h.logInputs(ctx, opDeleteObjectTags, "bucket", bucket, "key", key)

	if err := validation.RequiredAll(opDeleteObjectTags, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}

	input := &s3.DeleteObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	output, err := send(ctx, h, opDeleteObjectTags, input, h.api.DeleteObjectTagging)
	if err != nil {
		return nil, s3errors.FromAWS(opDeleteObjectTags, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// GetObjectTags returns the tags of an object. An untagged object yields an
// empty, non-nil slice.
func (h *Helper) GetObjectTags(ctx context.Context, bucket, key string) ([]types.Tag, error) {
	h.logInputs(ctx, opGetObjectTags, "bucket", bucket, "key", key)
	return h.getObjectTags(ctx, opGetObjectTags, bucket, key)
}

func (h *Helper) getObjectTags(ctx context.Context, op, bucket, key string) ([]types.Tag, error) {
	if err := validation.RequiredAll(op, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}

	input := &s3.GetObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	output, err := send(ctx, h, op, input, h.api.GetObjectTagging)
	if err != nil {
		return nil, s3errors.FromAWS(op, err).WithBucket(bucket).WithKey(key)
	}
	if output == nil || output.TagSet == nil {
		return []types.Tag{}, nil
	}
	return output.TagSet, nil
}

// SetObjectTag sets a single tag, keeping the object's other tags.
// An existing tag with the same name has its value replaced; otherwise the tag
// is appended. The read and the write are separate requests, so a concurrent
// writer can be overwritten.
func (h *Helper) SetObjectTag(
	ctx context.Context,
	bucket, key, tagName, tagValue string,
) (*s3.PutObjectTaggingOutput, error) {
	h.logInputs(ctx, opSetObjectTag, "bucket", bucket, "key", key, "tagName", tagName, "tagValue", tagValue)

	if err := validation.RequiredAll(opSetObjectTag,
		"bucket", bucket,
		"key", key,
		"tagName", tagName,
		"tagValue", tagValue,
	); err != nil {
		return nil, err
	}

	tags, err := h.getObjectTags(ctx, opSetObjectTag, bucket, key)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range tags {
		if aws.ToString(tags[i].Key) == tagName {
			tags[i].Value = aws.String(tagValue)
			found = true
			break
		}
	}
	if !found {
		tags = append(tags, types.Tag{Key: aws.String(tagName), Value: aws.String(tagValue)})
	}

	return h.putObjectTags(ctx, opSetObjectTag, bucket, key, tags)
}

// SetObjectTags replaces the tag set of an object.
func (h *Helper) SetObjectTags(
	ctx context.Context,
	bucket, key string,
	tags []types.Tag,
) (*s3.PutObjectTaggingOutput, error) {
	h.logInputs(ctx, opSetObjectTags, "bucket", bucket, "key", key, "tags", tags)
	return h.putObjectTags(ctx, opSetObjectTags, bucket, key, tags)
}

func (h *Helper) putObjectTags(
	ctx context.Context,
	op, bucket, key string,
	tags []types.Tag,
) (*s3.PutObjectTaggingOutput, error) {
	if err := validation.RequiredAll(op, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, s3errors.MissingParameter(op, "tags")
	}
	for i, tag := range tags {
		if validation.IsBlank(aws.ToString(tag.Key)) {
			return nil, s3errors.NewError(op, s3errors.ErrInvalidInput).
				WithMessage(fmt.Sprintf("tag at index %d has no key", i))
		}
	}

	input := &s3.PutObjectTaggingInput{
		Bucket:  aws.String(bucket),
		Key:     aws.String(key),
		Tagging: &types.Tagging{TagSet: tags},
	}

	output, err := send(ctx, h, op, input, h.api.PutObjectTagging)
	if err != nil {
		return nil, s3errors.FromAWS(op, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}
