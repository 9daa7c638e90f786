package fs

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable reports a transport failure talking to FS.
	ErrUpstreamUnavailable = errors.New("fs: upstream unavailable")
	// ErrUpstreamMalformedBody reports an FS response body that could not be decoded.
	ErrUpstreamMalformedBody = errors.New("fs: malformed response body")
	// ErrMalformedRecord reports a record without a decodable course code, term or year.
	ErrMalformedRecord = errors.New("fs: malformed record")
)

// BadStatusError is returned when FS answers with a non-2xx status.
type BadStatusError struct {
	StatusCode int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("Unexpected response code from FS: %d", e.StatusCode)
}
