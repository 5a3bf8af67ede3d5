// Package retry retries transient failures with exponential backoff.
//
// [Do] runs an operation until it succeeds, returns a [Fatal] error, the
// attempts are exhausted, or the context is done. Submit handlers that talk
// to remote storage use it; the wizard itself never retries a submit.
package retry
