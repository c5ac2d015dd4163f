package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// TestDataGenerator provides deterministic SDK fixtures for tests.
type TestDataGenerator struct {
	rand *rand.Rand
}

// NewTestDataGenerator creates a new test data generator with a specific seed.
func NewTestDataGenerator(seed int64) *TestDataGenerator {
	return &TestDataGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// GenerateObjectList generates count objects named prefix + "object-NNNN".
func (g *TestDataGenerator) GenerateObjectList(count int, prefix string) []types.Object {
	objects := make([]types.Object, count)
	now := time.Now()
	for i := range objects {
		objects[i] = types.Object{
			Key:          aws.String(fmt.Sprintf("%sobject-%04d", prefix, i)),
			Size:         aws.Int64(int64(g.rand.Intn(1024 * 1024))),
			LastModified: aws.Time(now.Add(-time.Duration(i) * time.Hour)),
			ETag:         aws.String(fmt.Sprintf(`"%032x"`, g.rand.Int63())),
			StorageClass: types.ObjectStorageClassStandard,
		}
	}
	return objects
}

// GenerateListPages splits objects into ListObjectsV2 pages of at most pageSize.
// Every page except the last is truncated and carries a continuation token.
func (g *TestDataGenerator) GenerateListPages(objects []types.Object, pageSize int) []*s3.ListObjectsV2Output {
	var pages []*s3.ListObjectsV2Output
	for start := 0; ; start += pageSize {
		end := min(start+pageSize, len(objects))
		page := &s3.ListObjectsV2Output{
			Contents:    objects[start:end],
			KeyCount:    aws.Int32(int32(end - start)),
			IsTruncated: aws.Bool(end < len(objects)),
		}
		if end < len(objects) {
			page.NextContinuationToken = aws.String(fmt.Sprintf("token-%d", end))
		}
		pages = append(pages, page)
		if end == len(objects) {
			return pages
		}
	}
}

// GenerateParts generates uploaded parts numbered 1..count in reverse order,
// as an unordered ListParts response might return them.
func (g *TestDataGenerator) GenerateParts(count int) []types.Part {
	parts := make([]types.Part, count)
	for i := range parts {
		number := int32(count - i)
		parts[i] = types.Part{
			PartNumber: aws.Int32(number),
			ETag:       aws.String(fmt.Sprintf(`"etag-%d"`, number)),
			Size:       aws.Int64(5_000_000),
		}
	}
	return parts
}

// GenerateCompletedParts generates completed parts numbered 1..count.
func (g *TestDataGenerator) GenerateCompletedParts(count int) []types.CompletedPart {
	parts := make([]types.CompletedPart, count)
	for i := range parts {
		parts[i] = types.CompletedPart{
			PartNumber: aws.Int32(int32(i + 1)),
			ETag:       aws.String(fmt.Sprintf(`"etag-%d"`, i+1)),
		}
	}
	return parts
}

// GenerateObjectMetadata generates user metadata for HeadObject responses.
func (g *TestDataGenerator) GenerateObjectMetadata() map[string]string {
	return map[string]string{
		"owner":     fmt.Sprintf("user-%d", g.rand.Intn(1000)),
		"checksum":  fmt.Sprintf("%016x", g.rand.Int63()),
		"generated": "true",
	}
}

// GenerateTags generates count tags named tag-N.
func (g *TestDataGenerator) GenerateTags(count int) []types.Tag {
	tags := make([]types.Tag, count)
	for i := range tags {
		tags[i] = types.Tag{
			Key:   aws.String(fmt.Sprintf("tag-%d", i)),
			Value: aws.String(fmt.Sprintf("value-%d", g.rand.Intn(1000))),
		}
	}
	return tags
}

// GenerateBucketMetadata generates a HeadBucket response for a bucket in region.
func (g *TestDataGenerator) GenerateBucketMetadata(region string) *s3.HeadBucketOutput {
	return &s3.HeadBucketOutput{
		BucketRegion: aws.String(region),
	}
}
