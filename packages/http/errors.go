package http

import "fmt"

// NetworkError reports a transport failure: DNS, timeout, refused connection,
// or a request that could not be built. No response was received.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
