package multipart

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
)

func TestCheckPartNumber(t *testing.T) {
	tests := []struct {
		name   string
		number int32
		errMsg string
	}{
		{"zero", 0, "partNumber cannot be zero"},
		{"negative", -1, "partNumber must be between 1 and 10000"},
		{"too large", 10001, "partNumber must be between 1 and 10000"},
		{"first", 1, ""},
		{"last", 10000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPartNumber("multipartUploadPart", tt.number)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, s3errors.ErrInvalidInput)
		})
	}
}

func TestCheckPartSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"empty", 0, true},
		{"just below minimum", MinPartSize - 1, true},
		{"minimum", MinPartSize, false},
		{"typical", 8 * 1024 * 1024, false},
		{"maximum", MaxPartSize, false},
		{"just above maximum", MaxPartSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPartSize("multipartUploadPart", tt.size)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "part size must be between 5.0 MB and 10 GB")
			assert.ErrorIs(t, err, s3errors.ErrInvalidPartSize)
			assert.True(t, s3errors.IsInvalidInput(err))
		})
	}
}

type fakePartLister struct {
	pages []*s3.ListPartsOutput
	calls int
	err   error
}

func (f *fakePartLister) ListParts(
	_ context.Context,
	_ *s3.ListPartsInput,
	_ ...func(*s3.Options),
) (*s3.ListPartsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestCollectParts(t *testing.T) {
	lister := &fakePartLister{
		pages: []*s3.ListPartsOutput{
			{
				Parts: []awstypes.Part{
					{PartNumber: aws.Int32(3), ETag: aws.String("etag-3")},
					{PartNumber: aws.Int32(1), ETag: aws.String("etag-1")},
				},
				IsTruncated:          aws.Bool(true),
				NextPartNumberMarker: aws.String("3"),
			},
			{
				Parts: []awstypes.Part{
					{PartNumber: aws.Int32(2), ETag: aws.String("etag-2")},
				},
				IsTruncated: aws.Bool(false),
			},
		},
	}

	parts, err := CollectParts(context.Background(), lister, "bucket", "key", "upload-id")
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.Equal(t, 2, lister.calls)

	for i, p := range parts {
		assert.Equal(t, int32(i+1), aws.ToInt32(p.PartNumber))
	}
	assert.Equal(t, "etag-1", aws.ToString(parts[0].ETag))
	assert.Equal(t, "etag-3", aws.ToString(parts[2].ETag))
}

func TestCollectParts_Error(t *testing.T) {
	sdkErr := errors.New("AWS Error")
	lister := &fakePartLister{err: sdkErr}

	parts, err := CollectParts(context.Background(), lister, "bucket", "key", "upload-id")
	assert.ErrorIs(t, err, sdkErr)
	assert.Nil(t, parts)
}
