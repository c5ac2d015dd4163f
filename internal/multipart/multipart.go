package multipart

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
)

const (
	// MinPartSize is the smallest part accepted, in bytes.
	MinPartSize int64 = 5_000_000

	// MaxPartSize is the largest part accepted, in bytes.
	MaxPartSize int64 = 10_000_000_000

	// MinPartNumber is the first valid part number.
	MinPartNumber int32 = 1

	// MaxPartNumber is the last valid part number.
	MaxPartNumber int32 = 10_000
)

// CheckPartNumber rejects part numbers outside 1..10000.
func CheckPartNumber(op string, partNumber int32) error {
	if partNumber == 0 {
		return errors.NewError(op, errors.ErrInvalidInput).
			WithMessage("partNumber cannot be zero")
	}
	if partNumber < MinPartNumber || partNumber > MaxPartNumber {
		return errors.NewError(op, errors.ErrInvalidInput).
			WithMessage(fmt.Sprintf("partNumber must be between %d and %d", MinPartNumber, MaxPartNumber))
	}
	return nil
}

// CheckPartSize rejects parts outside the inclusive [MinPartSize, MaxPartSize] window.
func CheckPartSize(op string, size int64) error {
	if size < MinPartSize || size > MaxPartSize {
		return errors.NewError(op, errors.ErrInvalidPartSize).
			WithMessage(fmt.Sprintf("part size must be between %s and %s, got %s",
				humanize.Bytes(uint64(MinPartSize)),
				humanize.Bytes(uint64(MaxPartSize)),
				humanize.Bytes(uint64(size))))
	}
	return nil
}

// CollectParts lists every part uploaded for uploadID and returns them as
// CompletedParts ordered by part number.
func CollectParts(
	ctx context.Context,
	client s3.ListPartsAPIClient,
	bucket, key, uploadID string,
) ([]awstypes.CompletedPart, error) {
	paginator := s3.NewListPartsPaginator(client, &s3.ListPartsInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})

	var parts []awstypes.CompletedPart
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range page.Parts {
			parts = append(parts, awstypes.CompletedPart{
				ETag:              p.ETag,
				PartNumber:        p.PartNumber,
				ChecksumCRC32:     p.ChecksumCRC32,
				ChecksumCRC32C:    p.ChecksumCRC32C,
				ChecksumCRC64NVME: p.ChecksumCRC64NVME,
				ChecksumSHA1:      p.ChecksumSHA1,
				ChecksumSHA256:    p.ChecksumSHA256,
			})
		}
	}

	SortParts(parts)
	return parts, nil
}

// SortParts orders parts by ascending part number, as CompleteMultipartUpload requires.
func SortParts(parts []awstypes.CompletedPart) {
	sort.Slice(parts, func(i, j int) bool {
		return aws.ToInt32(parts[i].PartNumber) < aws.ToInt32(parts[j].PartNumber)
	})
}
