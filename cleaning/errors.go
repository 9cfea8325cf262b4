package cleaning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when a payload build targets a do_number
// with no cleansed document in Target.
var ErrOrderNotFound = errors.New("order not found in target")

// ErrPayloadNotFound is returned when no persisted payload exists for a
// do_number.
var ErrPayloadNotFound = errors.New("payload result not found")

// UnavailableError reports that one of the two stores could not serve a
// query. Store is "source" or "target".
type UnavailableError struct {
	Store string
	Err   error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s database unavailable: %v", e.Store, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// WriteError is a page-scoped write failure. The page's transaction has
// already been rolled back when this surfaces.
type WriteError struct {
	Table     string
	PageStart int
	PageEnd   int
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s rows %d-%d: %v", e.Table, e.PageStart, e.PageEnd, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FatalTransferError wraps a permanent failure (bad data shape, schema
// mismatch). It is never retried; the run halts at the last committed
// page boundary.
type FatalTransferError struct {
	Op  string
	Err error
}

func (e *FatalTransferError) Error() string {
	return fmt.Sprintf("fatal error in %s: %v", e.Op, e.Err)
}

func (e *FatalTransferError) Unwrap() error { return e.Err }

// RetryExhaustedError is terminal for the current run; the cursor in the
// transfer report stands for manual resume.
type RetryExhaustedError struct {
	Op       string
	Attempts int
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error { return e.LastErr }

// IsTransient reports whether an error is worth retrying. Connectivity
// loss, timeouts, deadlocks and serialization failures are transient;
// integrity violations and schema errors are permanent. Unclassified
// errors count as transient, matching the historical behavior of the
// copy jobs which retried every batch failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization failure, deadlock
			return true
		}
		if len(pgErr.Code) < 2 {
			return false
		}
		switch pgErr.Code[:2] {
		case "08": // connection exceptions
			return true
		case "53": // insufficient resources
			return true
		case "57": // operator intervention (shutdown, query cancel)
			return true
		case "22", "23", "42": // data, integrity, syntax/access
			return false
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		// Dropped connection mid-response.
		return true
	}
	return true
}
