package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/multipart"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

const defaultPartSize = "8MiB"

func (a *app) uploadCmd() *cobra.Command {
	var (
		partSize string
		acl      string
	)

	cmd := &cobra.Command{
		Use:   "upload BUCKET KEY FILE",
		Short: "Upload a large local file with a multipart upload",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := humanize.ParseBytes(partSize)
			if err != nil {
				return fmt.Errorf("invalid part size %q: %w", partSize, err)
			}
			if err := multipart.CheckPartSize("upload", int64(size)); err != nil {
				return err
			}

			path, err := localPath(args[2])
			if err != nil {
				return err
			}

			total, err := a.uploadParts(cmd, args[0], args[1], path, int64(size), parseACL(acl))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "uploaded %s to s3://%s/%s (%s)\n",
				args[2], args[0], args[1], humanize.Bytes(uint64(total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&partSize, "part-size", defaultPartSize, "Size of each uploaded part")
	cmd.Flags().StringVar(&acl, "acl", "", "Canned ACL for the completed object")
	return cmd
}

// uploadParts streams path in partSize chunks. Every part must meet the
// minimum size, so a short final chunk is merged into the previous part, or
// split off at the minimum when merging would exceed the maximum. The upload
// is aborted when any step fails.
func (a *app) uploadParts(
	cmd *cobra.Command,
	bucket, key, path string,
	partSize int64,
	acl s3types.ObjectACL,
) (int64, error) {
	ctx := cmd.Context()

	info, err := a.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.Size() < multipart.MinPartSize {
		return 0, fmt.Errorf("%s is %s, smaller than the %s minimum part; use put instead",
			path, humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(multipart.MinPartSize)))
	}

	file, err := a.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	started, err := a.helper.MultipartUploadStart(ctx, bucket, key, acl)
	if err != nil {
		return 0, err
	}
	uploadID := aws.ToString(started.UploadId)

	abort := func(cause error) error {
		if _, err := a.helper.MultipartUploadAbort(ctx, bucket, key, uploadID); err != nil {
			return errors.Join(cause, err)
		}
		return cause
	}

	current, err := readChunk(file, partSize)
	if err != nil {
		return 0, abort(fmt.Errorf("failed to read file %s: %w", path, err))
	}

	var (
		total      int64
		partNumber int32
	)
	for len(current) > 0 {
		next, err := readChunk(file, partSize)
		if err != nil {
			return total, abort(fmt.Errorf("failed to read file %s: %w", path, err))
		}
		current, next = balanceTail(current, next, multipart.MinPartSize, multipart.MaxPartSize)

		partNumber++
		if _, err := a.helper.MultipartUploadPart(ctx, bucket, key, uploadID, partNumber, current); err != nil {
			return total, abort(err)
		}
		total += int64(len(current))
		current = next
	}

	if _, err := a.helper.MultipartUploadComplete(ctx, bucket, key, uploadID); err != nil {
		return total, abort(err)
	}
	return total, nil
}

// balanceTail keeps every part within [minSize, maxSize] when next is a final
// chunk shorter than minSize. It is merged into current, unless the merged
// part would exceed maxSize, in which case the last minSize bytes are split off.
func balanceTail(current, next []byte, minSize, maxSize int64) ([]byte, []byte) {
	if len(next) == 0 || int64(len(next)) >= minSize {
		return current, next
	}

	merged := append(current, next...)
	if int64(len(merged)) <= maxSize {
		return merged, nil
	}

	split := int64(len(merged)) - minSize
	return merged[:split], merged[split:]
}

// readChunk reads up to size bytes. It returns an empty slice at end of input.
func readChunk(r io.Reader, size int64) ([]byte, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return buf[:n], err
}
