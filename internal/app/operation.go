package app

import (
	"strings"
	"time"
)

// Operation records one CLI command run against the store. It is logged
// when the app starts and when it closes, so the log shows what each
// session changed and whether it succeeded.
type Operation struct {
	Name       string
	Parameters string
	Status     string // "success" or "error"
	Started    time.Time
}

// NewOperation creates an operation that has not failed yet.
func NewOperation(name string, started time.Time, params ...string) *Operation {
	return &Operation{
		Name:       name,
		Parameters: strings.Join(params, " "),
		Status:     "success",
		Started:    started,
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed(now time.Time) time.Duration {
	return now.Sub(op.Started)
}
