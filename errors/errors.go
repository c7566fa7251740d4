package errors

import "fmt"

var (
	ErrUnknownEventKind = fmt.Errorf("unknown event kind")
	ErrInvalidPayload   = fmt.Errorf("invalid event payload")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
)
