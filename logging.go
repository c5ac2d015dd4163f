package s3helper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// action is the name an operation logs under, e.g. S3Helper.CopyObject.
func action(op string) string {
	if op == "" {
		return "S3Helper"
	}
	return "S3Helper." + strings.ToUpper(op[:1]) + op[1:]
}

func (h *Helper) logInputs(ctx context.Context, op string, args ...any) {
	if h.logger == nil {
		return
	}
	h.logger.DebugContext(ctx, "inputs",
		slog.String("action", action(op)),
		slog.Group("inputs", args...))
}

func (h *Helper) logRequest(ctx context.Context, op string, request any) {
	if h.logger == nil {
		return
	}
	h.logger.DebugContext(ctx, "request",
		slog.String("action", action(op)),
		slog.Any("request", request))
}

func (h *Helper) logResponse(ctx context.Context, op string, response any) {
	if h.logger == nil {
		return
	}
	h.logger.DebugContext(ctx, "response",
		slog.String("action", action(op)),
		slog.Any("response", response))
}

func (h *Helper) logError(ctx context.Context, op string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.ErrorContext(ctx, "s3 request failed",
		slog.String("action", action(op)),
		slog.String("error", err.Error()))
}

// sdkFunc is the shape shared by every S3API method.
type sdkFunc[In, Out any] func(context.Context, *In, ...func(*s3.Options)) (*Out, error)

// send logs input, calls fn, and logs the outcome. SDK errors are returned
// as is; callers attach operation context.
func send[In, Out any](ctx context.Context, h *Helper, op string, input *In, fn sdkFunc[In, Out]) (*Out, error) {
	h.logRequest(ctx, op, input)

	output, err := fn(ctx, input)
	if err != nil {
		h.logError(ctx, op, err)
		return nil, err
	}

	h.logResponse(ctx, op, output)
	return output, nil
}
