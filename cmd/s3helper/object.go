package main

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

// localPath resolves p against the working directory.
func localPath(p string) (string, error) {
	return filepath.Abs(p)
}

func (a *app) putCmd() *cobra.Command {
	var (
		acl         string
		contentType string
		encoding    string
		metadata    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "put BUCKET KEY FILE",
		Short: "Upload a local file as an object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := localPath(args[2])
			if err != nil {
				return err
			}

			var opts []s3types.PutOption
			if acl != "" {
				opts = append(opts, s3helper.WithACL(parseACL(acl)))
			}
			if contentType != "" {
				opts = append(opts, s3helper.WithContentType(contentType))
			}
			if encoding != "" {
				opts = append(opts, s3helper.WithContentEncoding(encoding))
			}
			if len(metadata) > 0 {
				opts = append(opts, s3helper.WithMetadata(metadata))
			}

			if _, err := a.helper.PutObjectFile(cmd.Context(), args[0], args[1], path, opts...); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "uploaded %s to s3://%s/%s\n", args[2], args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&acl, "acl", "", "Canned ACL (default bucket-owner-full-control)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type (default sniffed from the file)")
	cmd.Flags().StringVar(&encoding, "content-encoding", "", "Content encoding (default utf-8)")
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil, "User metadata as key=value pairs")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET KEY FILE",
		Short: "Download an object to a local file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := localPath(args[2])
			if err != nil {
				return err
			}

			written, err := a.helper.GetObjectToFile(cmd.Context(), args[0], args[1], path)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "downloaded s3://%s/%s to %s (%s)\n",
				args[0], args[1], args[2], humanize.Bytes(uint64(written)))
			return nil
		},
	}
}

func (a *app) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat BUCKET KEY",
		Short: "Write an object's contents to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.helper.GetObjectContents(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if body == nil {
				return nil
			}
			defer body.Close()

			_, err = io.Copy(a.out, body)
			return err
		},
	}
}

func (a *app) copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cp SRC_BUCKET SRC_KEY DEST_BUCKET DEST_KEY",
		Short: "Copy an object",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.helper.CopyObject(cmd.Context(), args[0], args[1], args[2], args[3]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "copied s3://%s/%s to s3://%s/%s\n", args[0], args[1], args[2], args[3])
			return nil
		},
	}
}

func (a *app) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv SRC_BUCKET SRC_KEY DEST_BUCKET DEST_KEY",
		Short: "Move an object",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.helper.MoveObject(cmd.Context(), args[0], args[1], args[2], args[3]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "moved s3://%s/%s to s3://%s/%s\n", args[0], args[1], args[2], args[3])
			return nil
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm BUCKET KEY [KEY...]",
		Short: "Delete one or more objects",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, keys := args[0], args[1:]
			if len(keys) == 1 {
				if _, err := a.helper.DeleteObject(cmd.Context(), bucket, keys[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "deleted s3://%s/%s\n", bucket, keys[0])
				return nil
			}

			out, err := a.helper.DeleteObjects(cmd.Context(), bucket, keys)
			if out != nil {
				for _, deleted := range out.Deleted {
					fmt.Fprintf(a.out, "deleted s3://%s/%s\n", bucket, aws.ToString(deleted.Key))
				}
				for _, failed := range out.Errors {
					fmt.Fprintf(a.errOut, "failed s3://%s/%s: %s\n", bucket, aws.ToString(failed.Key), aws.ToString(failed.Message))
				}
			}
			return err
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls BUCKET [PREFIX]",
		Short: "List object keys",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 2 {
				prefix = args[1]
			}

			keys, err := a.helper.ListObjectKeys(cmd.Context(), args[0], prefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(a.out, key)
			}
			return nil
		},
	}
}

func (a *app) statCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat BUCKET KEY",
		Short: "Show an object's user metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := a.helper.ObjectExists(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("s3://%s/%s does not exist", args[0], args[1])
			}

			metadata, err := a.helper.GetObjectMetadata(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "s3://%s/%s\n", args[0], args[1])
			for _, line := range sortedPairs(metadata) {
				fmt.Fprintf(a.out, "  %s\n", line)
			}
			return nil
		},
	}
}

func sortedPairs(m map[string]string) []string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	slices.Sort(pairs)
	return pairs
}

func parseACL(acl string) s3types.ObjectACL {
	return s3types.ObjectACL(strings.TrimSpace(acl))
}
