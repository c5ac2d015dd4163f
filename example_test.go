package s3helper_test

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/testutil"
)

func ExampleHelper_PutObjectString() {
	ctx := context.Background()
	mock := &testutil.MockS3Client{
		PutObjectFunc: func(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			fmt.Println(aws.ToString(input.ContentType), input.ACL, aws.ToString(input.ContentEncoding))
			return &s3.PutObjectOutput{}, nil
		},
	}
	helper := s3helper.NewWithClient(mock)

	if _, err := helper.PutObjectString(ctx, "reports", "daily.json", `{"ok":true}`); err != nil {
		fmt.Println(err)
	}

	_, err := helper.PutObjectString(ctx, "", "daily.json", "{}")
	fmt.Println(err)
	fmt.Println(errors.IsInvalidInput(err))
	// Output:
	// application/json bucket-owner-full-control utf-8
	// s3.putObjectString: must supply bucket: s3: invalid input
	// true
}

func ExampleHelper_ObjectExists() {
	ctx := context.Background()
	mock := &testutil.MockS3Client{
		HeadObjectFunc: func(_ context.Context, input *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
			if aws.ToString(input.Key) == "present.txt" {
				return &s3.HeadObjectOutput{}, nil
			}
			return nil, &types.NotFound{}
		},
	}
	helper := s3helper.NewWithClient(mock)

	for _, key := range []string{"present.txt", "absent.txt"} {
		exists, err := helper.ObjectExists(ctx, "bucket", key)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(key, exists)
	}
	// Output:
	// present.txt true
	// absent.txt false
}

func ExampleHelper_SetObjectTag() {
	ctx := context.Background()
	mock := &testutil.MockS3Client{
		GetObjectTaggingFunc: func(_ context.Context, _ *s3.GetObjectTaggingInput, _ ...func(*s3.Options)) (*s3.GetObjectTaggingOutput, error) {
			return &s3.GetObjectTaggingOutput{TagSet: []types.Tag{
				{Key: aws.String("env"), Value: aws.String("dev")},
			}}, nil
		},
		PutObjectTaggingFunc: func(_ context.Context, input *s3.PutObjectTaggingInput, _ ...func(*s3.Options)) (*s3.PutObjectTaggingOutput, error) {
			for _, tag := range input.Tagging.TagSet {
				fmt.Printf("%s=%s\n", aws.ToString(tag.Key), aws.ToString(tag.Value))
			}
			return &s3.PutObjectTaggingOutput{}, nil
		},
	}
	helper := s3helper.NewWithClient(mock)

	if _, err := helper.SetObjectTag(ctx, "bucket", "key", "env", "prod"); err != nil {
		fmt.Println(err)
	}
	// Output:
	// env=prod
}

func ExampleHelper_GetObjectContents() {
	ctx := context.Background()
	mock := &testutil.MockS3Client{
		GetObjectFunc: func(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			return testutil.CreateGetObjectOutput([]byte("hello world"), "text/plain"), nil
		},
	}
	helper := s3helper.NewWithClient(mock)

	body, err := helper.GetObjectContents(ctx, "bucket", "greeting.txt")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	fmt.Println(string(data))
	// Output:
	// hello world
}
