package s3helper

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

func TestHelper_CreateBucket(t *testing.T) {
	tests := []struct {
		name           string
		bucket         string
		opts           []s3types.BucketOption
		wantConstraint types.BucketLocationConstraint
		sdkErr         error
		wantErr        bool
		errContains    string
		wantCode       s3errors.ErrorCode
	}{
		{
			name:   "default region",
			bucket: "my-new-bucket",
		},
		{
			name:   "us-east-1 sends no constraint",
			bucket: "my-new-bucket",
			opts:   []s3types.BucketOption{WithBucketRegion("us-east-1")},
		},
		{
			name:           "other region sets constraint",
			bucket:         "my-new-bucket",
			opts:           []s3types.BucketOption{WithBucketRegion("eu-west-1")},
			wantConstraint: types.BucketLocationConstraintEuWest1,
		},
		{
			name:        "missing name",
			bucket:      "  ",
			wantErr:     true,
			errContains: "s3.createBucket: must supply name",
			wantCode:    s3errors.CodeInvalidInput,
		},
		{
			name:        "uppercase name",
			bucket:      "My-Bucket",
			wantErr:     true,
			errContains: "can only contain lowercase letters",
			wantCode:    s3errors.CodeInvalidInput,
		},
		{
			name:        "ip address name",
			bucket:      "192.168.1.1",
			wantErr:     true,
			errContains: "formatted as an IP address",
			wantCode:    s3errors.CodeInvalidInput,
		},
		{
			name:        "already exists",
			bucket:      "taken-bucket",
			sdkErr:      testutil.APIError("BucketAlreadyExists", "The requested bucket name is not available"),
			wantErr:     true,
			errContains: "s3.createBucket bucket taken-bucket",
			wantCode:    s3errors.CodeAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h, _ := newTestHelper(func(m *testutil.MockS3Client) {
				m.CreateBucketFunc = func(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
					called = true
					assert.Equal(t, tt.bucket, aws.ToString(params.Bucket))
					if tt.wantConstraint == "" {
						assert.Nil(t, params.CreateBucketConfiguration)
					} else {
						require.NotNil(t, params.CreateBucketConfiguration)
						assert.Equal(t, tt.wantConstraint, params.CreateBucketConfiguration.LocationConstraint)
					}
					if tt.sdkErr != nil {
						return nil, tt.sdkErr
					}
					return &s3.CreateBucketOutput{Location: aws.String("/" + tt.bucket)}, nil
				}
			})

			output, err := h.CreateBucket(context.Background(), tt.bucket, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Equal(t, tt.wantCode, s3errors.CodeOf(err))
				assert.Equal(t, tt.sdkErr != nil, called)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/"+tt.bucket, aws.ToString(output.Location))
		})
	}
}

func TestHelper_DeleteBucket(t *testing.T) {
	h, _ := newTestHelper(func(m *testutil.MockS3Client) {
		m.DeleteBucketFunc = func(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
			if aws.ToString(params.Bucket) == "full-bucket" {
				return nil, testutil.APIError("BucketNotEmpty", "The bucket you tried to delete is not empty")
			}
			return &s3.DeleteBucketOutput{}, nil
		}
	})

	output, err := h.DeleteBucket(context.Background(), testutil.TestBucket)
	require.NoError(t, err)
	assert.NotNil(t, output)

	_, err = h.DeleteBucket(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3.deleteBucket: must supply name")

	_, err = h.DeleteBucket(context.Background(), "full-bucket")
	require.Error(t, err)
	assert.Equal(t, s3errors.CodeConflict, s3errors.CodeOf(err))
	assert.Equal(t, "BucketNotEmpty", s3errors.APICode(err))
}

func TestHelper_GetBucketMetadata(t *testing.T) {
	expected := testutil.NewTestDataGenerator(1).GenerateBucketMetadata("eu-west-1")
	h, _ := newTestHelper(func(m *testutil.MockS3Client) {
		m.HeadBucketFunc = func(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
			if aws.ToString(params.Bucket) == "missing-bucket" {
				return nil, &types.NotFound{}
			}
			return expected, nil
		}
	})

	output, err := h.GetBucketMetadata(context.Background(), testutil.TestBucket)
	require.NoError(t, err)
	assert.Same(t, expected, output)

	_, err = h.GetBucketMetadata(context.Background(), " ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3.getBucketMetadata: must supply bucket")

	_, err = h.GetBucketMetadata(context.Background(), "missing-bucket")
	require.Error(t, err)
	assert.True(t, s3errors.IsNotFound(err))
}

var _ testutil.BucketStore = (*Helper)(nil)

func TestRemoveBucketThroughHelper(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		keyErrors   []types.Error
		wantDeletes bool
		wantRemoved bool
		errContains string
	}{
		{
			name:        "objects are deleted before the bucket",
			keys:        []string{"a.txt", "dir/b.txt"},
			wantDeletes: true,
			wantRemoved: true,
		},
		{
			name:        "empty bucket skips object deletion",
			wantRemoved: true,
		},
		{
			name: "undeleted key keeps the bucket",
			keys: []string{"a.txt", "locked.txt"},
			keyErrors: []types.Error{
				{Key: aws.String("locked.txt"), Code: aws.String("AccessDenied"), Message: aws.String("Access Denied")},
			},
			wantDeletes: true,
			errContains: "1 keys not deleted, first locked.txt: Access Denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deleted []string
			removed := false
			h, _ := newTestHelper(func(m *testutil.MockS3Client) {
				m.ListObjectsV2Func = func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					contents := make([]types.Object, 0, len(tt.keys))
					for _, key := range tt.keys {
						contents = append(contents, types.Object{Key: aws.String(key)})
					}
					return &s3.ListObjectsV2Output{Contents: contents, IsTruncated: aws.Bool(false)}, nil
				}
				m.DeleteObjectsFunc = func(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
					for _, obj := range params.Delete.Objects {
						deleted = append(deleted, aws.ToString(obj.Key))
					}
					return &s3.DeleteObjectsOutput{Errors: tt.keyErrors}, nil
				}
				m.DeleteBucketFunc = func(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
					removed = true
					return &s3.DeleteBucketOutput{}, nil
				}
			})

			err := testutil.RemoveBucket(context.Background(), h, testutil.TestBucket)

			if tt.wantDeletes {
				assert.Equal(t, tt.keys, deleted)
			} else {
				assert.Empty(t, deleted)
			}
			assert.Equal(t, tt.wantRemoved, removed)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}
