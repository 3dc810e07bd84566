package stats

import (
	"fmt"

	c "github.com/d0ngw/chanstat/common"
)

// ErrorHandler handles a failure of the registry operation op
type ErrorHandler func(op string, err error)

// PanicOnError treats any failure as unrecoverable
func PanicOnError(op string, err error) {
	panic(fmt.Errorf("statistics %s fail: %w", op, err))
}

// LogOnError logs the failure and continues, the in-memory counters are kept
// and will be written by the next successful save
func LogOnError(op string, err error) {
	c.Errorf("statistics %s fail,err:%v", op, err)
}

// Error handler names used in configuration
const (
	OnErrorPanic = "panic"
	OnErrorLog   = "log"
)

// ErrorHandlerByName returns the handler registered as name
func ErrorHandlerByName(name string) (ErrorHandler, error) {
	switch name {
	case "", OnErrorPanic:
		return PanicOnError, nil
	case OnErrorLog:
		return LogOnError, nil
	}
	return nil, fmt.Errorf("unknown error handler %q", name)
}
