package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

const envPrefix = "S3HELPER"

// Global flag names. Env vars use the prefix with dashes replaced,
// e.g. S3HELPER_PATH_STYLE.
const (
	flagConfig       = "config"
	flagRegion       = "region"
	flagEndpoint     = "endpoint"
	flagPathStyle    = "path-style"
	flagAccessKey    = "access-key"
	flagSecretKey    = "secret-key"
	flagSessionToken = "session-token"
	flagMaxRetries   = "max-retries"
	flagTimeout      = "timeout"
	flagLogLevel     = "log-level"
)

// settings is the resolved global configuration.
type settings struct {
	Region       string
	Endpoint     string
	PathStyle    bool
	AccessKey    string
	SecretKey    string
	SessionToken string
	MaxRetries   int
	Timeout      time.Duration
	LogLevel     string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(flagRegion, "")
	v.SetDefault(flagPathStyle, false)
	v.SetDefault(flagMaxRetries, 0)
	v.SetDefault(flagTimeout, 0)
	v.SetDefault(flagLogLevel, "off")
	return v
}

// loadSettings reads the optional config file and resolves every global flag.
func loadSettings(cmd *cobra.Command, v *viper.Viper) (*settings, error) {
	loader := NewFlagLoader(cmd, v)

	if path := loader.String(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return &settings{
		Region:       loader.String(flagRegion),
		Endpoint:     loader.String(flagEndpoint),
		PathStyle:    loader.Bool(flagPathStyle),
		AccessKey:    loader.String(flagAccessKey),
		SecretKey:    loader.String(flagSecretKey),
		SessionToken: loader.String(flagSessionToken),
		MaxRetries:   loader.Int(flagMaxRetries),
		Timeout:      loader.Duration(flagTimeout),
		LogLevel:     loader.String(flagLogLevel),
	}, nil
}

// newLogger returns nil for level "off" or "", which disables helper logging.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" || strings.EqualFold(level, "off") {
		return nil, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// options converts settings into helper options.
func (s *settings) options() []s3types.Option {
	var opts []s3types.Option
	if s.Region != "" {
		opts = append(opts, s3helper.WithRegion(s.Region))
	}
	if s.Endpoint != "" {
		opts = append(opts, s3helper.WithEndpoint(s.Endpoint))
	}
	if s.PathStyle {
		opts = append(opts, s3helper.WithForcePathStyle(true))
	}
	if s.AccessKey != "" && s.SecretKey != "" {
		opts = append(opts, s3helper.WithStaticCredentials(s.AccessKey, s.SecretKey, s.SessionToken))
	}
	if s.MaxRetries > 0 {
		opts = append(opts, s3helper.WithMaxRetries(s.MaxRetries))
	}
	if s.Timeout > 0 {
		opts = append(opts, s3helper.WithTimeout(s.Timeout))
	}
	return opts
}
