package fetch

import "fmt"

// ChecksumError reports that a downloaded payload failed digest validation
// on every attempt of the retry budget.
type ChecksumError struct {
	Hash  string // expected digest, lowercase hex
	URL   string
	Tries int
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("failed to validate checksum at url %s with hash %s after %d tries", e.URL, e.Hash, e.Tries)
}

// RequestError reports a network-level failure fetching a URL after the
// retry budget was exhausted.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("unable to fetch %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ConfigError reports an invalid caller-supplied configuration. It is never
// retried.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// DecodeError reports that fetched bytes could not be deserialized into the
// expected document shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("deserializing metadata: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TaskError reports that background work (digest computation) failed to
// complete, as opposed to the content itself being bad.
type TaskError struct {
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("background task failed: %v", e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
