package reply

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"provider_map/pkg/contextx"
	"provider_map/pkg/errcodes"
	"provider_map/pkg/logx"
	"provider_map/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// GenericError is what clients see in place of internal error details.
const GenericError = "Server error"

// codedError is satisfied by domain errors that carry their own code.
type codedError interface {
	error
	ErrorCode() failure.ErrorCode
	PublicMessage() string
}

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.ValidationError:   http.StatusBadRequest,
	errcodes.InvalidSlug:       http.StatusBadRequest,
	errcodes.InvalidCategoryID: http.StatusBadRequest,
	errcodes.NotFound:          http.StatusNotFound,
	errcodes.ProviderNotFound:  http.StatusNotFound,
	errcodes.TooManyRequests:   http.StatusTooManyRequests,
	errcodes.TimeoutExceeded:   http.StatusGatewayTimeout,
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type options struct {
	message string
	debug   bool
}

type Option func(*options)

// WithMessage sets the human readable message of the failure envelope.
func WithMessage(message string) Option {
	return func(o *options) {
		o.message = message
	}
}

// WithDebug exposes internal error text in the envelope.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error, opts ...Option) {
	logger(ctx).Error("error", logx.Error(err))

	o := options{message: "Request failed"}
	for _, opt := range opts {
		opt(&o)
	}

	status := Status(err)

	response := rest.Error{
		Success: false,
		Message: o.message,
		Error:   GenericError,
	}

	switch {
	case o.debug:
		response.Error = err.Error()
	case status < http.StatusInternalServerError:
		response.Error = clientDescription(err)
	}

	JSON(ctx, w, status, response)
}

// Status maps an error onto the HTTP status it is answered with.
func Status(err error) int {
	var coded codedError
	if errors.As(err, &coded) {
		if status, ok := statusByCode[coded.ErrorCode()]; ok {
			return status
		}
	}

	if status, ok := statusByCode[failure.Code(err)]; ok {
		return status
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		return http.StatusBadRequest
	case failure.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func clientDescription(err error) string {
	if description := failure.Description(err); description != "" {
		return description
	}

	var coded codedError
	if errors.As(err, &coded) {
		return coded.PublicMessage()
	}

	return http.StatusText(Status(err))
}
