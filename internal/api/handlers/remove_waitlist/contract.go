package remove_waitlist

import "context"

type WaitlistService interface {
	Remove(ctx context.Context, waitlistID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
