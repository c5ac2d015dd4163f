package s3helper

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

func TestHelper_GetSignedURLDownload(t *testing.T) {
	tests := []struct {
		name       string
		expiry     time.Duration
		wantExpiry time.Duration
	}{
		{"default expiry", 0, 5 * time.Minute},
		{"negative expiry", -time.Second, 5 * time.Minute},
		{"custom expiry", 15 * time.Minute, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presigner := &testutil.MockPresigner{
				PresignGetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
					assert.Equal(t, testutil.TestBucket, aws.ToString(params.Bucket))
					assert.Equal(t, testutil.TestKey, aws.ToString(params.Key))
					assert.Equal(t, tt.wantExpiry, testutil.PresignExpiry(optFns...))
					return &v4.PresignedHTTPRequest{URL: "https://signed.example/get"}, nil
				},
			}
			h, _ := newTestHelper(nil, WithPresigner(presigner))

			signed, err := h.GetSignedURLDownload(context.Background(), testutil.TestBucket, testutil.TestKey, tt.expiry)
			require.NoError(t, err)
			assert.Equal(t, "https://signed.example/get", signed)
		})
	}
}

func TestHelper_GetSignedURLUpload(t *testing.T) {
	tests := []struct {
		name    string
		acl     s3types.ObjectACL
		wantACL types.ObjectCannedACL
	}{
		{"without acl", "", ""},
		{"blank acl", "  ", ""},
		{"with acl", s3types.ACLBucketOwnerFullControl, types.ObjectCannedACLBucketOwnerFullControl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presigner := &testutil.MockPresigner{
				PresignPutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
					assert.Equal(t, tt.wantACL, params.ACL)
					assert.Equal(t, time.Minute, testutil.PresignExpiry(optFns...))
					return &v4.PresignedHTTPRequest{URL: "https://signed.example/put"}, nil
				},
			}
			h, _ := newTestHelper(nil, WithPresigner(presigner))

			signed, err := h.GetSignedURLUpload(context.Background(), testutil.TestBucket, testutil.TestKey, time.Minute, tt.acl)
			require.NoError(t, err)
			assert.Equal(t, "https://signed.example/put", signed)
		})
	}
}

func TestHelper_SignedURL_Errors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		h, _ := newTestHelper(nil, WithPresigner(&testutil.MockPresigner{}))

		_, err := h.GetSignedURLDownload(context.Background(), "", testutil.TestKey, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3.getSignedURLDownload: must supply bucket")

		_, err = h.GetSignedURLUpload(context.Background(), testutil.TestBucket, " ", 0, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3.getSignedURLUpload: must supply key")

		_, err = h.GetSignedURLUpload(context.Background(), testutil.TestBucket, testutil.TestKey, 0, "open")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown canned ACL open")
	})

	t.Run("no presigner", func(t *testing.T) {
		h, _ := newTestHelper(nil)

		_, err := h.GetSignedURLDownload(context.Background(), testutil.TestBucket, testutil.TestKey, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, s3errors.ErrNoPresigner)
		assert.Equal(t, s3errors.CodeInvalidConfig, s3errors.CodeOf(err))
	})

	t.Run("presign failure", func(t *testing.T) {
		presigner := &testutil.MockPresigner{
			PresignPutObjectFunc: func(context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
				return nil, testutil.ErrAWS
			},
		}
		h, _ := newTestHelper(nil, WithPresigner(presigner))

		_, err := h.GetSignedURLUpload(context.Background(), testutil.TestBucket, testutil.TestKey, 0, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrAWS)
	})
}

func TestHelper_SignedURL_SDKPresigner(t *testing.T) {
	h, err := New(context.Background(),
		WithAWSConfig(testAWSConfig()),
		WithRegion("eu-west-1"),
	)
	require.NoError(t, err)

	signed, err := h.GetSignedURLDownload(context.Background(), "my-bucket", "reports/2024 q1.csv", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "my-bucket.s3.eu-west-1.amazonaws.com", u.Host)
	assert.True(t, strings.HasSuffix(u.Path, "/reports/2024 q1.csv"))
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
