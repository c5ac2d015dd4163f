package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

// Build-time variables (set via -ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type helperFactory func(ctx context.Context, opts ...s3types.Option) (*s3helper.Helper, error)

type app struct {
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper

	// fs holds local files read and written by commands.
	fs        fs.Filesystem
	newHelper helperFactory

	helper *s3helper.Helper
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       out,
		errOut:    errOut,
		v:         newViper(),
		fs:        billy.NewOSFS("/"),
		newHelper: s3helper.New,
	}
}

func (a *app) execute(args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "s3helper",
		Short: "Validated S3 object, bucket, tag, and signed URL operations",
		Long: `s3helper wraps common S3 operations with argument validation.
Global settings may be given as flags, S3HELPER_* environment variables,
or keys in a config file, in that order of precedence.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.helper == nil {
				return nil
			}
			return a.helper.Close()
		},
	}
	root.SetVersionTemplate("s3helper {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "Path to a config file (yaml, json, or toml)")
	pf.String(flagRegion, "", "AWS region")
	pf.String(flagEndpoint, "", "Custom S3 endpoint URL")
	pf.Bool(flagPathStyle, false, "Use path-style bucket addressing")
	pf.String(flagAccessKey, "", "Static access key ID")
	pf.String(flagSecretKey, "", "Static secret access key")
	pf.String(flagSessionToken, "", "Static session token")
	pf.Int(flagMaxRetries, 0, "Maximum SDK retry attempts")
	pf.Duration(flagTimeout, 0, "HTTP client timeout")
	pf.String(flagLogLevel, "off", "Log level: off, debug, info, warn, error")
	_ = a.v.BindPFlags(pf)

	root.AddCommand(
		a.putCmd(),
		a.uploadCmd(),
		a.getCmd(),
		a.catCmd(),
		a.copyCmd(),
		a.moveCmd(),
		a.removeCmd(),
		a.listCmd(),
		a.statCmd(),
		a.tagCmd(),
		a.presignCmd(),
		a.makeBucketCmd(),
		a.removeBucketCmd(),
		a.versionCmd(),
	)
	return root
}

// setup resolves settings and builds the helper for the running command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadSettings(cmd, a.v)
	if err != nil {
		return err
	}

	logger, err := newLogger(a.errOut, cfg.LogLevel)
	if err != nil {
		return err
	}

	opts := cfg.options()
	opts = append(opts, s3helper.WithLogger(logger), s3helper.WithFilesystem(a.fs))

	helper, err := a.newHelper(cmd.Context(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create S3 helper: %w", err)
	}
	a.helper = helper
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "s3helper %s\n", Version)
			fmt.Fprintf(a.out, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.out, "  Go version: %s\n", runtime.Version())
		},
	}
}
