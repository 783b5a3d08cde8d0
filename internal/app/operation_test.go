package app

import (
	"testing"
	"time"
)

func TestNewOperation(t *testing.T) {
	started := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		operation  string
		params     []string
		wantParams string
	}{
		{
			name:       "with parameters",
			operation:  "task add",
			params:     []string{"Book", "studio"},
			wantParams: "Book studio",
		},
		{
			name:       "no parameters",
			operation:  "reset",
			wantParams: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.operation, started, tt.params...)

			if op.Name != tt.operation {
				t.Errorf("Name = %q, want %q", op.Name, tt.operation)
			}
			if op.Parameters != tt.wantParams {
				t.Errorf("Parameters = %q, want %q", op.Parameters, tt.wantParams)
			}
			if op.Status != "success" {
				t.Errorf("Status = %q, want %q", op.Status, "success")
			}
		})
	}
}

func TestOperation_FailAndElapsed(t *testing.T) {
	started := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	op := NewOperation("invoice add", started)

	op.Fail()
	if op.Status != "error" {
		t.Errorf("Status = %q after Fail, want error", op.Status)
	}
	if got := op.Elapsed(started.Add(1500 * time.Millisecond)); got != 1500*time.Millisecond {
		t.Errorf("Elapsed() = %v", got)
	}
}
