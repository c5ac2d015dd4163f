// Package batch splits bulk object deletes into requests S3 will accept.
package batch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultBatchSize is the S3 maximum number of keys per DeleteObjects request.
const DefaultBatchSize = 1000

// ObjectsDeleter is the single SDK call the Deleter needs.
type ObjectsDeleter interface {
	DeleteObjects(
		ctx context.Context,
		input *s3.DeleteObjectsInput,
		opts ...func(*s3.Options),
	) (*s3.DeleteObjectsOutput, error)
}

// Deleter handles batch deletion of S3 objects.
type Deleter struct {
	client    ObjectsDeleter
	batchSize int
}

// New creates a Deleter using DefaultBatchSize.
func New(client ObjectsDeleter) *Deleter {
	return &Deleter{
		client:    client,
		batchSize: DefaultBatchSize,
	}
}

// WithBatchSize returns a copy of d that sends at most size keys per request.
func (d *Deleter) WithBatchSize(size int) *Deleter {
	if size <= 0 || size > DefaultBatchSize {
		size = DefaultBatchSize
	}
	return &Deleter{client: d.client, batchSize: size}
}

// Requests builds the DeleteObjects inputs for keys, one per batch.
func (d *Deleter) Requests(bucket string, keys []string) []*s3.DeleteObjectsInput {
	inputs := make([]*s3.DeleteObjectsInput, 0, (len(keys)+d.batchSize-1)/d.batchSize)
	for start := 0; start < len(keys); start += d.batchSize {
		end := min(start+d.batchSize, len(keys))

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		inputs = append(inputs, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: objects},
		})
	}
	return inputs
}

// Delete sends every batch in order and merges the outputs. A request-level
// failure stops processing and is returned as is, together with the output
// merged so far.
func (d *Deleter) Delete(ctx context.Context, inputs []*s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error) {
	if len(inputs) == 1 {
		return d.client.DeleteObjects(ctx, inputs[0])
	}

	merged := &s3.DeleteObjectsOutput{}
	for _, input := range inputs {
		out, err := d.client.DeleteObjects(ctx, input)
		if err != nil {
			return merged, err
		}
		if out == nil {
			continue
		}
		merged.Deleted = append(merged.Deleted, out.Deleted...)
		merged.Errors = append(merged.Errors, out.Errors...)
		if out.RequestCharged != "" {
			merged.RequestCharged = out.RequestCharged
		}
	}
	return merged, nil
}
