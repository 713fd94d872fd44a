package fix_tee_times

import (
	"context"

	usecase "github.com/jimbobirecode/teemail-service/internal/usecase/fix_tee_times"
)

type FixTeeTimesUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
