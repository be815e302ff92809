package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrReceiveTimeout     = fmt.Errorf("receive timed out")
	ErrTransportClosed    = fmt.Errorf("transport closed")
	ErrInvalidDisplayName = fmt.Errorf("invalid display name")
)
