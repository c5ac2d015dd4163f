// Package s3helper provides a validating convenience layer over the AWS SDK v2 S3 client.
//
// A Helper checks its arguments before every call, fills in defaults
// (region us-east-1, ACL bucket-owner-full-control, Content-Encoding utf-8,
// five-minute signed URLs), and otherwise hands requests to the SDK and its
// responses back to the caller unchanged. Retries, signing, and transport
// stay with the SDK.
//
// Operations:
//   - Objects: CopyObject, MoveObject, DeleteObject, DeleteObjects, GetObject,
//     GetObjectContents, GetObjectBytes, GetObjectJSON, GetObjectMetadata,
//     ObjectExists, PutObject, PutObjectString, PutObjectJSON, PutObjectFile,
//     GetObjectToFile, ListObjectKeys
//   - Buckets: CreateBucket, DeleteBucket, GetBucketMetadata
//   - Tags: GetObjectTags, SetObjectTag, SetObjectTags, DeleteObjectTags
//   - Multipart uploads: MultipartUploadStart, MultipartUploadPart,
//     MultipartUploadComplete, MultipartUploadAbort
//   - Signed URLs: GetSignedURLDownload, GetSignedURLUpload
//
// Errors are *errors.Error values carrying the operation, bucket and key.
// Validation failures wrap errors.ErrInvalidInput; SDK failures wrap the SDK
// error itself, so errors.As still reaches smithy.APIError.
//
// Example usage:
//
//	helper, err := s3helper.New(ctx, s3helper.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//
//	if _, err := helper.PutObjectString(ctx, "my-bucket", "notes/today.txt", "hello"); err != nil {
//	    return err
//	}
//
//	url, err := helper.GetSignedURLDownload(ctx, "my-bucket", "notes/today.txt", 0)
package s3helper
