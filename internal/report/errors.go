package report

import (
	"errors"
	"fmt"

	"github.com/j-veylop/reportbot/internal/db"
)

// Error kinds of a single report invocation.
var (
	ErrStoreUnavailable   = db.ErrStoreUnavailable
	ErrQuery              = db.ErrQuery
	ErrMissingServiceData = errors.New("missing service data")
	ErrTransportSend      = errors.New("transport send failed")
)

// MissingServiceDataError names the expected service label that an aggregate
// has no entry for.
type MissingServiceDataError struct {
	Service   string
	Aggregate string // "users" or "usages"
}

func (e *MissingServiceDataError) Error() string {
	return fmt.Sprintf("%s: no %s count for service %q", ErrMissingServiceData, e.Aggregate, e.Service)
}

// Is makes errors.Is(err, ErrMissingServiceData) match.
func (e *MissingServiceDataError) Is(target error) bool {
	return target == ErrMissingServiceData
}

// Kind classifies err into a short label suitable for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrQuery):
		return "query"
	case errors.Is(err, ErrMissingServiceData):
		return "missing_service_data"
	case errors.Is(err, ErrTransportSend):
		return "transport_send"
	default:
		return "unknown"
	}
}
