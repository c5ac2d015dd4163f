package s3helper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/contenttype"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

const (
	opCopyObject        = "copyObject"
	opMoveObject        = "moveObject"
	opDeleteObject      = "deleteObject"
	opDeleteObjects     = "deleteObjects"
	opGetObject         = "getObject"
	opGetObjectJSON     = "getObjectJSON"
	opGetObjectMetadata = "getObjectMetadata"
	opObjectExists      = "objectExists"
	opPutObject         = "putObject"
	opPutObjectString   = "putObjectString"
	opPutObjectJSON     = "putObjectJSON"
	opPutObjectFile     = "putObjectFile"
	opGetObjectToFile   = "getObjectToFile"
	opListObjectKeys    = "listObjectKeys"
)

// CopyObject copies an object to a new location, possibly in another bucket.
// The source key is URL-escaped into CopySource; slashes are kept.
//
// Errors:
//   - ErrInvalidInput: If any argument is empty or whitespace
//   - ErrInvalidObjectKey: If the destination key is too long or has control characters
//   - AWS SDK errors wrapped in Error type
//
// Example:
//
//	_, err := helper.CopyObject(ctx, "source-bucket", "reports/2024.csv",
//	                            "archive-bucket", "reports/2024.csv")
func (h *Helper) CopyObject(
	ctx context.Context,
	sourceBucket, sourceKey, destinationBucket, destinationKey string,
) (*s3.CopyObjectOutput, error) {
	h.logInputs(ctx, opCopyObject,
		"sourceBucket", sourceBucket,
		"sourceKey", sourceKey,
		"destinationBucket", destinationBucket,
		"destinationKey", destinationKey)

	if err := validation.RequiredAll(opCopyObject,
		"sourceBucket", sourceBucket,
		"sourceKey", sourceKey,
		"destinationBucket", destinationBucket,
		"destinationKey", destinationKey,
	); err != nil {
		return nil, err
	}
	if err := validation.ValidateObjectKey(opCopyObject, "destinationKey", destinationKey); err != nil {
		return nil, err
	}

	input := &s3.CopyObjectInput{
		Bucket:     aws.String(destinationBucket),
		Key:        aws.String(destinationKey),
		CopySource: aws.String(copySource(sourceBucket, sourceKey)),
	}

	output, err := send(ctx, h, opCopyObject, input, h.api.CopyObject)
	if err != nil {
		return nil, s3errors.FromAWS(opCopyObject, err).
			WithBucket(destinationBucket).
			WithKey(destinationKey)
	}
	return output, nil
}

// MoveObject moves an object by copying it and then deleting the source.
// The source is deleted only when the copy returned a result; a failed copy
// leaves the source untouched. If the delete fails the object exists in both
// locations.
func (h *Helper) MoveObject(
	ctx context.Context,
	sourceBucket, sourceKey, destinationBucket, destinationKey string,
) error {
	h.logInputs(ctx, opMoveObject,
		"sourceBucket", sourceBucket,
		"sourceKey", sourceKey,
		"destinationBucket", destinationBucket,
		"destinationKey", destinationKey)

	if err := validation.RequiredAll(opMoveObject,
		"sourceBucket", sourceBucket,
		"sourceKey", sourceKey,
		"destinationBucket", destinationBucket,
		"destinationKey", destinationKey,
	); err != nil {
		return err
	}

	copied, err := h.CopyObject(ctx, sourceBucket, sourceKey, destinationBucket, destinationKey)
	if err != nil {
		return err
	}
	if copied == nil {
		return nil
	}

	_, err = h.DeleteObject(ctx, sourceBucket, sourceKey)
	return err
}

// DeleteObject deletes a single object.
func (h *Helper) DeleteObject(ctx context.Context, bucket, key string) (*s3.DeleteObjectOutput, error) {
	h.logInputs(ctx, opDeleteObject, "bucket", bucket, "key", key)

	if err := validation.RequiredAll(opDeleteObject, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	output, err := send(ctx, h, opDeleteObject, input, h.api.DeleteObject)
	if err != nil {
		return nil, s3errors.FromAWS(opDeleteObject, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// DeleteObjects deletes keys from bucket. Lists longer than 1000 keys are
// sent as several requests and their outputs merged.
//
// Per-key failures reported by S3 are returned in the output's Errors field,
// not as an error. When a request fails, the returned output holds the
// batches that completed before it.
func (h *Helper) DeleteObjects(ctx context.Context, bucket string, keys []string) (*s3.DeleteObjectsOutput, error) {
	h.logInputs(ctx, opDeleteObjects, "bucket", bucket, "keys", keys)

	if err := validation.Required(opDeleteObjects, "bucket", bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateKeys(opDeleteObjects, keys); err != nil {
		return nil, err
	}

	inputs := h.deleter.Requests(bucket, keys)
	h.logRequest(ctx, opDeleteObjects, inputs)

	output, err := h.deleter.Delete(ctx, inputs)
	if err != nil {
		h.logError(ctx, opDeleteObjects, err)
		return output, s3errors.FromAWS(opDeleteObjects, err).WithBucket(bucket)
	}

	h.logResponse(ctx, opDeleteObjects, output)
	return output, nil
}

// GetObject retrieves an object. The caller must close the output Body.
func (h *Helper) GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error) {
	h.logInputs(ctx, opGetObject, "bucket", bucket, "key", key)
	return h.getObject(ctx, opGetObject, bucket, key)
}

func (h *Helper) getObject(ctx context.Context, op, bucket, key string) (*s3.GetObjectOutput, error) {
	if err := validation.RequiredAll(op, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	output, err := send(ctx, h, op, input, h.api.GetObject)
	if err != nil {
		return nil, s3errors.FromAWS(op, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// GetObjectContents returns the body of an object, or nil when S3 returned none.
// The caller must close a non-nil body.
func (h *Helper) GetObjectContents(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	h.logInputs(ctx, opGetObject, "bucket", bucket, "key", key)

	output, err := h.getObject(ctx, opGetObject, bucket, key)
	if err != nil {
		return nil, err
	}
	if output == nil || output.Body == nil {
		return nil, nil
	}
	return output.Body, nil
}

// GetObjectBytes reads an object fully into memory.
func (h *Helper) GetObjectBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	body, err := h.GetObjectContents(ctx, bucket, key)
	if err != nil || body == nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, s3errors.NewObjectError(opGetObject, bucket, key, err)
	}
	return data, nil
}

// GetObjectJSON decodes a JSON object into v.
// An empty object is a decode error.
func (h *Helper) GetObjectJSON(ctx context.Context, bucket, key string, v any) error {
	h.logInputs(ctx, opGetObjectJSON, "bucket", bucket, "key", key)

	output, err := h.getObject(ctx, opGetObjectJSON, bucket, key)
	if err != nil {
		return err
	}

	var data []byte
	if output != nil && output.Body != nil {
		defer output.Body.Close()
		if data, err = io.ReadAll(output.Body); err != nil {
			return s3errors.NewObjectError(opGetObjectJSON, bucket, key, err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return s3errors.NewObjectError(opGetObjectJSON, bucket, key, err).
			WithCode(s3errors.CodeInvalidInput)
	}
	return nil
}

// GetObjectAsJSON decodes a JSON object into a new T.
//
// Example:
//
//	cfg, err := s3helper.GetObjectAsJSON[Config](ctx, helper, "configs", "app.json")
func GetObjectAsJSON[T any](ctx context.Context, h *Helper, bucket, key string) (T, error) {
	var v T
	err := h.GetObjectJSON(ctx, bucket, key, &v)
	return v, err
}

// GetObjectMetadata returns the user metadata of an object. The map may be nil.
func (h *Helper) GetObjectMetadata(ctx context.Context, bucket, key string) (map[string]string, error) {
	h.logInputs(ctx, opGetObjectMetadata, "bucket", bucket, "key", key)

	output, err := h.headObject(ctx, opGetObjectMetadata, bucket, key)
	if err != nil {
		return nil, err
	}
	if output == nil {
		return nil, nil
	}
	return output.Metadata, nil
}

// ObjectExists reports whether an object exists. A missing object is not an error.
func (h *Helper) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	h.logInputs(ctx, opObjectExists, "bucket", bucket, "key", key)

	_, err := h.headObject(ctx, opObjectExists, bucket, key)
	if err != nil {
		if s3errors.IsObjectNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (h *Helper) headObject(ctx context.Context, op, bucket, key string) (*s3.HeadObjectOutput, error) {
	if err := validation.RequiredAll(op, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}

	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	output, err := send(ctx, h, op, input, h.api.HeadObject)
	if err != nil {
		return nil, s3errors.FromAWS(op, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// PutObject uploads body to bucket/key.
//
// Unless overridden with options, the object is written with the
// bucket-owner-full-control ACL, utf-8 Content-Encoding, and a content type
// derived from the key extension.
//
// Errors:
//   - ErrInvalidInput: If bucket or key is empty, body is nil, or an option is invalid
//   - ErrInvalidObjectKey: If the key is too long or has control characters
//   - AWS SDK errors wrapped in Error type
//
// Example:
//
//	_, err := helper.PutObject(ctx, "my-bucket", "data/report.csv", file,
//	    s3helper.WithACL(s3types.ACLPrivate),
//	    s3helper.WithMetadata(map[string]string{"owner": "reports"}),
//	)
func (h *Helper) PutObject(
	ctx context.Context,
	bucket, key string,
	body io.Reader,
	opts ...s3types.PutOption,
) (*s3.PutObjectOutput, error) {
	h.logInputs(ctx, opPutObject, "bucket", bucket, "key", key)
	return h.putObject(ctx, opPutObject, bucket, key, body, -1, contenttype.FromKey(key), opts)
}

// PutObjectString uploads contents as the object body.
// The content type is sniffed from contents when not given.
func (h *Helper) PutObjectString(
	ctx context.Context,
	bucket, key, contents string,
	opts ...s3types.PutOption,
) (*s3.PutObjectOutput, error) {
	h.logInputs(ctx, opPutObjectString, "bucket", bucket, "key", key)
	return h.putObject(ctx, opPutObjectString, bucket, key,
		strings.NewReader(contents), int64(len(contents)),
		contenttype.FromBytes(key, []byte(contents)), opts)
}

// PutObjectJSON uploads v encoded as JSON with content type application/json.
func (h *Helper) PutObjectJSON(
	ctx context.Context,
	bucket, key string,
	v any,
	opts ...s3types.PutOption,
) (*s3.PutObjectOutput, error) {
	h.logInputs(ctx, opPutObjectJSON, "bucket", bucket, "key", key)

	if err := validation.RequiredAll(opPutObjectJSON, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, s3errors.NewObjectError(opPutObjectJSON, bucket, key, err).
			WithCode(s3errors.CodeInvalidInput)
	}

	return h.putObject(ctx, opPutObjectJSON, bucket, key,
		bytes.NewReader(data), int64(len(data)), "application/json", opts)
}

// PutObjectFile uploads a file from the helper's filesystem.
// The content type is sniffed from the file when not given.
func (h *Helper) PutObjectFile(
	ctx context.Context,
	bucket, key, path string,
	opts ...s3types.PutOption,
) (*s3.PutObjectOutput, error) {
	h.logInputs(ctx, opPutObjectFile, "bucket", bucket, "key", key, "path", path)

	if err := validation.RequiredAll(opPutObjectFile, "bucket", bucket, "key", key, "path", path); err != nil {
		return nil, err
	}

	info, err := h.fs.Stat(path)
	if err != nil {
		return nil, s3errors.NewObjectError(opPutObjectFile, bucket, key, err).
			WithMessage("failed to stat file " + path)
	}
	if info.IsDir() {
		return nil, s3errors.NewObjectError(opPutObjectFile, bucket, key, s3errors.ErrInvalidInput).
			WithMessage(path + " is a directory")
	}

	file, err := h.fs.Open(path)
	if err != nil {
		return nil, s3errors.NewObjectError(opPutObjectFile, bucket, key, err).
			WithMessage("failed to open file " + path)
	}
	defer file.Close()

	return h.putObject(ctx, opPutObjectFile, bucket, key,
		file, info.Size(), contenttype.FromFile(h.fs, path), opts)
}

// putObject validates and sends a PutObject request. A negative length leaves
// ContentLength to the SDK; detected is used when no content type option is set.
func (h *Helper) putObject(
	ctx context.Context,
	op, bucket, key string,
	body io.Reader,
	length int64,
	detected string,
	opts []s3types.PutOption,
) (*s3.PutObjectOutput, error) {
	if err := validation.RequiredAll(op, "bucket", bucket, "key", key); err != nil {
		return nil, err
	}
	if err := validation.ValidateObjectKey(op, "key", key); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, s3errors.MissingParameter(op, "contents")
	}

	cfg := putConfig(opts)
	if err := validation.ValidateACL(op, string(cfg.ACL)); err != nil {
		return nil, err
	}
	if err := validation.ValidateMetadata(op, cfg.Metadata); err != nil {
		return nil, err
	}

	contentType := cfg.ContentType
	if validation.IsBlank(contentType) {
		contentType = detected
	}

	input := &s3.PutObjectInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		Body:            body,
		ACL:             types.ObjectCannedACL(cfg.ACL),
		ContentEncoding: aws.String(cfg.ContentEncoding),
		ContentType:     aws.String(contentType),
		Metadata:        cfg.Metadata,
	}
	if length >= 0 {
		input.ContentLength = aws.Int64(length)
	}

	output, err := send(ctx, h, op, input, h.api.PutObject)
	if err != nil {
		return nil, s3errors.FromAWS(op, err).WithBucket(bucket).WithKey(key)
	}
	return output, nil
}

// GetObjectToFile downloads an object to path on the helper's filesystem,
// creating parent directories as needed. It returns the number of bytes written.
// A partially written file is removed when the download fails.
func (h *Helper) GetObjectToFile(ctx context.Context, bucket, key, path string) (int64, error) {
	h.logInputs(ctx, opGetObjectToFile, "bucket", bucket, "key", key, "path", path)

	if err := validation.RequiredAll(opGetObjectToFile, "bucket", bucket, "key", key, "path", path); err != nil {
		return 0, err
	}

	output, err := h.getObject(ctx, opGetObjectToFile, bucket, key)
	if err != nil {
		return 0, err
	}

	var body io.Reader = strings.NewReader("")
	if output != nil && output.Body != nil {
		defer output.Body.Close()
		body = output.Body
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := h.fs.MkdirAll(dir, 0o755); err != nil {
			return 0, s3errors.NewObjectError(opGetObjectToFile, bucket, key, err).
				WithMessage("failed to create directory " + dir)
		}
	}

	file, err := h.fs.Create(path)
	if err != nil {
		return 0, s3errors.NewObjectError(opGetObjectToFile, bucket, key, err).
			WithMessage("failed to create file " + path)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = h.fs.Remove(path)
		return written, s3errors.NewObjectError(opGetObjectToFile, bucket, key, err).
			WithMessage("failed to write file " + path)
	}
	return written, nil
}

// ListObjectKeys returns every key in bucket that starts with prefix.
// An empty prefix lists the whole bucket.
func (h *Helper) ListObjectKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	h.logInputs(ctx, opListObjectKeys, "bucket", bucket, "prefix", prefix)

	if err := validation.Required(opListObjectKeys, "bucket", bucket); err != nil {
		return nil, err
	}

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	h.logRequest(ctx, opListObjectKeys, input)

	keys := []string{}
	paginator := s3.NewListObjectsV2Paginator(h.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			h.logError(ctx, opListObjectKeys, err)
			return nil, s3errors.FromAWS(opListObjectKeys, err).WithBucket(bucket)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	h.logResponse(ctx, opListObjectKeys, keys)
	return keys, nil
}

// copySource builds the CopySource value bucket/key with each key segment escaped.
func copySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return bucket + "/" + strings.Join(segments, "/")
}
