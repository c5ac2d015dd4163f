package main

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
)

func (a *app) tagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage object tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get BUCKET KEY",
			Short: "Print an object's tags",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				tags, err := a.helper.GetObjectTags(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				for _, tag := range tags {
					fmt.Fprintf(a.out, "%s=%s\n", aws.ToString(tag.Key), aws.ToString(tag.Value))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set BUCKET KEY NAME VALUE",
			Short: "Add or replace a single tag",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.helper.SetObjectTag(cmd.Context(), args[0], args[1], args[2], args[3])
				return err
			},
		},
		&cobra.Command{
			Use:   "rm BUCKET KEY",
			Short: "Remove all tags from an object",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := a.helper.DeleteObjectTags(cmd.Context(), args[0], args[1])
				return err
			},
		},
	)
	return cmd
}
