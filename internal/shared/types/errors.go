package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoProfilesFound     = errors.New("no AWS profiles found. Please configure AWS CLI first")
	ErrProfileNotFound     = errors.New("the specified profile was not found in AWS configuration")
	ErrUnknownReportType   = errors.New("unknown report type")
	ErrUnsupportedLogLevel = errors.New("unsupported log level")
)

// ProviderError is a fatal provider failure, tagged with the resource and the
// fact being collected. Listing failures carry Op "list" and no resource.
type ProviderError struct {
	Op       string
	Resource string
	Fact     string
	Err      error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Resource == "":
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	case e.Fact == "":
		return fmt.Sprintf("%s %s failed: %v", e.Op, e.Resource, e.Err)
	default:
		return fmt.Sprintf("%s %s for %s failed: %v", e.Op, e.Fact, e.Resource, e.Err)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
