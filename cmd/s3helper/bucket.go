package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

func (a *app) makeBucketCmd() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "mb BUCKET",
		Short: "Create a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []s3types.BucketOption
			if region != "" {
				opts = append(opts, s3helper.WithBucketRegion(region))
			}

			if _, err := a.helper.CreateBucket(cmd.Context(), args[0], opts...); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created bucket %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "bucket-region", "", "Region constraint for the new bucket")
	return cmd
}

func (a *app) removeBucketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rb BUCKET",
		Short: "Delete an empty bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.helper.DeleteBucket(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted bucket %s\n", args[0])
			return nil
		},
	}
}
