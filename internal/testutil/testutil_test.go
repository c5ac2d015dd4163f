package testutil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
)

func TestMockS3Client(t *testing.T) {
	t.Run("PutObject with custom function", func(t *testing.T) {
		mock := &MockS3Client{
			PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
				assert.Equal(t, TestBucket, aws.ToString(params.Bucket))
				assert.Equal(t, TestKey, aws.ToString(params.Key))
				return &s3.PutObjectOutput{ETag: aws.String("test-etag")}, nil
			},
		}

		output, err := mock.PutObject(context.Background(), &s3.PutObjectInput{
			Bucket: aws.String(TestBucket),
			Key:    aws.String(TestKey),
		})

		require.NoError(t, err)
		assert.Equal(t, "test-etag", aws.ToString(output.ETag))
	})

	t.Run("returns default when no function set", func(t *testing.T) {
		mock := &MockS3Client{}

		get, err := mock.GetObject(context.Background(), &s3.GetObjectInput{})
		require.NoError(t, err)
		assert.NotNil(t, get)

		tags, err := mock.GetObjectTagging(context.Background(), &s3.GetObjectTaggingInput{})
		require.NoError(t, err)
		assert.Nil(t, tags.TagSet)
	})

	t.Run("propagates errors", func(t *testing.T) {
		mock := &MockS3Client{
			HeadBucketFunc: func(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
				return nil, APIError("NoSuchBucket", "The specified bucket does not exist")
			},
		}

		_, err := mock.HeadBucket(context.Background(), &s3.HeadBucketInput{})
		require.Error(t, err)
		assert.True(t, s3errors.IsBucketNotFound(err))
	})
}

func TestMockPresigner(t *testing.T) {
	t.Run("default URLs", func(t *testing.T) {
		p := &MockPresigner{}

		get, err := p.PresignGetObject(context.Background(), &s3.GetObjectInput{})
		require.NoError(t, err)
		assert.Equal(t, DefaultSignedURL, get.URL)
		assert.Equal(t, http.MethodGet, get.Method)

		put, err := p.PresignPutObject(context.Background(), &s3.PutObjectInput{})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, put.Method)
	})

	t.Run("expiry is visible to custom functions", func(t *testing.T) {
		opt := func(o *s3.PresignOptions) { o.Expires = 90 * time.Second }
		assert.Equal(t, 90*time.Second, PresignExpiry(opt))
		assert.Zero(t, PresignExpiry())
	})
}

func TestHelpers(t *testing.T) {
	t.Run("GenerateRandomData", func(t *testing.T) {
		assert.Len(t, GenerateRandomData(1024), 1024)
	})

	t.Run("GenerateTestKey", func(t *testing.T) {
		key1 := GenerateTestKey("prefix")
		key2 := GenerateTestKey("prefix")
		assert.True(t, strings.HasPrefix(key1, "prefix/test-object-"))
		assert.NotEqual(t, key1, key2)
	})

	t.Run("GenerateTestBucketName", func(t *testing.T) {
		name := GenerateTestBucketName("Test_Bucket")
		assert.True(t, strings.HasPrefix(name, "test-bucket-"))
		assert.LessOrEqual(t, len(name), 63)
	})

	t.Run("CreateGetObjectOutput", func(t *testing.T) {
		out := CreateGetObjectOutput([]byte(TestContents), "text/plain")
		body, err := io.ReadAll(out.Body)
		require.NoError(t, err)
		assert.Equal(t, TestContents, string(body))
		assert.Equal(t, int64(len(TestContents)), aws.ToInt64(out.ContentLength))
		assert.Equal(t, CalculateETag([]byte(TestContents)), aws.ToString(out.ETag))
	})

	t.Run("TrackingBody", func(t *testing.T) {
		body := NewTrackingBody([]byte("abc"))
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(data))
		assert.False(t, body.Closed)
		require.NoError(t, body.Close())
		assert.True(t, body.Closed)
	})
}

func TestTestDataGenerator(t *testing.T) {
	gen := NewTestDataGenerator(42)

	t.Run("GenerateObjectList", func(t *testing.T) {
		objects := gen.GenerateObjectList(3, "logs/")
		require.Len(t, objects, 3)
		assert.Equal(t, "logs/object-0000", aws.ToString(objects[0].Key))
	})

	t.Run("GenerateListPages", func(t *testing.T) {
		pages := gen.GenerateListPages(gen.GenerateObjectList(5, ""), 2)
		require.Len(t, pages, 3)
		assert.True(t, aws.ToBool(pages[0].IsTruncated))
		assert.Equal(t, "token-2", aws.ToString(pages[0].NextContinuationToken))
		assert.False(t, aws.ToBool(pages[2].IsTruncated))
		assert.Len(t, pages[2].Contents, 1)

		empty := gen.GenerateListPages(nil, 2)
		require.Len(t, empty, 1)
		assert.Empty(t, empty[0].Contents)
	})

	t.Run("GenerateParts", func(t *testing.T) {
		parts := gen.GenerateParts(3)
		require.Len(t, parts, 3)
		assert.Equal(t, int32(3), aws.ToInt32(parts[0].PartNumber))
		assert.Equal(t, int32(1), aws.ToInt32(parts[2].PartNumber))
	})

	t.Run("GenerateCompletedParts", func(t *testing.T) {
		parts := gen.GenerateCompletedParts(2)
		require.Len(t, parts, 2)
		assert.Equal(t, int32(1), aws.ToInt32(parts[0].PartNumber))
	})

	t.Run("GenerateTags", func(t *testing.T) {
		tags := gen.GenerateTags(2)
		require.Len(t, tags, 2)
		assert.Equal(t, "tag-1", aws.ToString(tags[1].Key))
	})

	t.Run("GenerateBucketMetadata", func(t *testing.T) {
		out := gen.GenerateBucketMetadata("eu-west-1")
		assert.Equal(t, "eu-west-1", aws.ToString(out.BucketRegion))
	})
}
