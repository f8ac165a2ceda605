package req

import (
	"context"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"

	"provider_map/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// Validate checks a struct of already collected path/query parameters.
// code is reported to the client when validation fails.
func Validate(ctx context.Context, dest any, code failure.ErrorCode) error {
	if err := validate.StructCtx(ctx, dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(code),
			failure.WithDescription(err.Error()),
		)
	}

	return nil
}

// ValidationCode is the code used when a handler has nothing more specific.
const ValidationCode = errcodes.ValidationError
