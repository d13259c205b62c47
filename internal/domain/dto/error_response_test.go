package dto

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		name        string
		message     string
		cause       error
		wantDetails string
		wantError   string
	}{
		{name: "message only", message: "no data found", wantError: "no data found"},
		{
			name:        "with cause",
			message:     "invalid date range",
			cause:       errors.New("end before start"),
			wantDetails: "end before start",
			wantError:   "invalid date range: end before start",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := time.Now().UTC()
			e := NewErrorResponse(tc.message, tc.cause)
			if e.Message != tc.message || e.ErrorDetails != tc.wantDetails {
				t.Fatalf("unexpected %+v", e)
			}
			if e.Timestamp.Before(before) || e.Timestamp.Location() != time.UTC {
				t.Fatalf("timestamp %v not stamped in UTC", e.Timestamp)
			}
			if e.Error() != tc.wantError {
				t.Fatalf("Error() = %q, want %q", e.Error(), tc.wantError)
			}
		})
	}
}

func TestErrorResponse_As(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewErrorResponse("rate limit exceeded", nil))

	var resp ErrorResponse
	if !errors.As(wrapped, &resp) || resp.Message != "rate limit exceeded" {
		t.Fatalf("errors.As failed: %+v", resp)
	}
}
