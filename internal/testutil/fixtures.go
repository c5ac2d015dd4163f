package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

// BucketStore is the part of the helper's API that fixtures use to create
// and tear down buckets. *s3helper.Helper satisfies it.
type BucketStore interface {
	CreateBucket(ctx context.Context, name string, opts ...s3types.BucketOption) (*s3.CreateBucketOutput, error)
	ListObjectKeys(ctx context.Context, bucket, prefix string) ([]string, error)
	DeleteObjects(ctx context.Context, bucket string, keys []string) (*s3.DeleteObjectsOutput, error)
	DeleteBucket(ctx context.Context, name string) (*s3.DeleteBucketOutput, error)
}

// NewBucket creates a uniquely named bucket through store and removes it,
// together with anything written to it, when t finishes.
func NewBucket(t *testing.T, store BucketStore, prefix string) string {
	t.Helper()

	ctx := context.Background()
	bucket := GenerateTestBucketName(prefix)
	if _, err := store.CreateBucket(ctx, bucket); err != nil {
		t.Fatalf("creating bucket %s: %v", bucket, err)
	}
	t.Cleanup(func() {
		if err := RemoveBucket(ctx, store, bucket); err != nil {
			t.Logf("%v", err)
		}
	})

	return bucket
}

// RemoveBucket deletes every object in bucket, then the bucket itself.
func RemoveBucket(ctx context.Context, store BucketStore, bucket string) error {
	keys, err := store.ListObjectKeys(ctx, bucket, "")
	if err != nil {
		return fmt.Errorf("emptying bucket %s: %w", bucket, err)
	}

	if len(keys) > 0 {
		output, err := store.DeleteObjects(ctx, bucket, keys)
		if err != nil {
			return fmt.Errorf("emptying bucket %s: %w", bucket, err)
		}
		if output != nil && len(output.Errors) > 0 {
			first := output.Errors[0]
			return fmt.Errorf("emptying bucket %s: %d keys not deleted, first %s: %s",
				bucket, len(output.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
		}
	}

	if _, err := store.DeleteBucket(ctx, bucket); err != nil {
		return fmt.Errorf("removing bucket %s: %w", bucket, err)
	}
	return nil
}
