package s3helper

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/batch"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

// Helper is a validating facade over an S3 client.
// Every operation checks its arguments before calling S3 and returns the
// SDK output unchanged on success.
type Helper struct {
	// api is the underlying AWS SDK S3 client
	api s3api.S3API

	// presigner signs URLs; nil when none was configured
	presigner s3api.Presigner

	// logger receives debug and error records; nil disables logging
	logger *slog.Logger

	// fs is used by PutObjectFile and GetObjectToFile
	fs fs.Filesystem

	// deleter splits DeleteObjects calls into batches
	deleter *batch.Deleter
}

// New creates a Helper backed by a new S3 client.
// It loads AWS credentials using the default credential chain unless
// WithAWSConfig or WithStaticCredentials is given.
//
// Example:
//
//	helper, err := s3helper.New(ctx,
//	    s3helper.WithRegion("us-west-2"),
//	    s3helper.WithLogger(slog.Default()),
//	)
func New(ctx context.Context, opts ...s3types.Option) (*Helper, error) {
	clientCfg := &s3types.ClientConfig{}
	for _, opt := range opts {
		opt(clientCfg)
	}

	if static, ok := clientCfg.Credentials.(credentials.StaticCredentialsProvider); ok {
		if _, err := static.Retrieve(ctx); err != nil {
			return nil, errors.NewError("new", errors.ErrInvalidCredentials).WithMessage(err.Error())
		}
	}

	var cfg aws.Config
	if clientCfg.CustomAWSConfig != nil {
		cfg = clientCfg.CustomAWSConfig.Copy()
	} else {
		var loadOpts []func(*config.LoadOptions) error
		if clientCfg.Region != "" {
			loadOpts = append(loadOpts, config.WithRegion(clientCfg.Region))
		}
		if clientCfg.Credentials != nil {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(clientCfg.Credentials))
		}

		var err error
		cfg, err = config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.NewError("new", err).WithCode(errors.CodeInvalidConfig)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = s3types.DefaultRegion
	}
	if clientCfg.Credentials != nil {
		cfg.Credentials = clientCfg.Credentials
	}
	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	client := s3.NewFromConfig(cfg, s3Options(clientCfg)...)

	return newHelper(client, s3.NewPresignClient(client), clientCfg), nil
}

// NewWithClient creates a Helper around an existing S3API implementation.
// This is primarily used for testing with mocked clients. Signed URLs are
// available when api is an *s3.Client or WithPresigner is given.
func NewWithClient(api s3api.S3API, opts ...s3types.Option) *Helper {
	clientCfg := &s3types.ClientConfig{}
	for _, opt := range opts {
		opt(clientCfg)
	}

	var presigner s3api.Presigner
	if client, ok := api.(*s3.Client); ok {
		presigner = s3.NewPresignClient(client)
	}

	return newHelper(api, presigner, clientCfg)
}

func newHelper(api s3api.S3API, presigner s3api.Presigner, cfg *s3types.ClientConfig) *Helper {
	if cfg.Presigner != nil {
		presigner = cfg.Presigner
	}

	filesystem := cfg.Filesystem
	if filesystem == nil {
		filesystem = billy.NewOSFS("/")
	}

	return &Helper{
		api:       api,
		presigner: presigner,
		logger:    cfg.Logger,
		fs:        filesystem,
		deleter:   batch.New(api),
	}
}

// s3Options translates client configuration into per-client SDK options.
func s3Options(cfg *s3types.ClientConfig) []func(*s3.Options) {
	var opts []func(*s3.Options)

	if cfg.ForcePathStyle {
		opts = append(opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil && cfg.Timeout > 0 {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient != nil {
		opts = append(opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return opts
}

// Close releases any resources held by the helper.
// Currently a no-op; the SDK client holds no resources that need closing.
func (h *Helper) Close() error {
	return nil
}
