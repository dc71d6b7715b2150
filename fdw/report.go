package fdw

import (
	"context"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/logger"
	"github.com/kbukum/stripefdw/observability"
)

// Report logs a fatal scan error once, records it on the active span, and
// returns err unchanged so the caller can abort the host operation with it.
// A nil err is a no-op.
func Report(ctx context.Context, log *logger.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if log == nil {
		log = logger.Get("fdw")
	}

	fields := logger.Fields(
		logger.FieldOperation, op,
		logger.FieldCode, string(errors.CodeOf(err)),
	)
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok {
		msg = appErr.Message
		for k, v := range appErr.Details {
			fields[k] = v
		}
		if appErr.Cause != nil {
			fields[logger.FieldError] = appErr.Cause.Error()
		}
	}

	log.WithContext(ctx).Error(msg, fields)
	observability.SetSpanError(ctx, err)
	return err
}
