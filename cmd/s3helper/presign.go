package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

func (a *app) presignCmd() *cobra.Command {
	var (
		upload bool
		expiry time.Duration
		acl    string
	)

	cmd := &cobra.Command{
		Use:   "presign BUCKET KEY",
		Short: "Print a signed download or upload URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				url string
				err error
			)
			if upload {
				url, err = a.helper.GetSignedURLUpload(cmd.Context(), args[0], args[1], expiry, parseACL(acl))
			} else {
				url, err = a.helper.GetSignedURLDownload(cmd.Context(), args[0], args[1], expiry)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}

	cmd.Flags().BoolVar(&upload, "upload", false, "Sign a PUT URL instead of a GET URL")
	cmd.Flags().DurationVar(&expiry, "expiry", s3types.DefaultSignedURLExpiry, "URL lifetime")
	cmd.Flags().StringVar(&acl, "acl", "", "Canned ACL signed into an upload URL")
	return cmd
}
