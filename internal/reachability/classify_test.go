package reachability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "operation timed out" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsDownError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"host unreachable", syscall.EHOSTUNREACH, true},
		{"net timeout", timeoutErr{}, true},
		{"dns failure", &net.DNSError{Err: "no such host", Name: "db.internal"}, true},
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, true},
		{"textual signature survives wrapping", errors.New("read tcp 10.0.0.1:5432: connection reset by peer"), true},
		{"auth failure means server answered", errors.New("pq: password authentication failed for user"), false},
		{"permission denied means server answered", errors.New("pq: permission denied for table bookings"), false},
		{"sql error means server answered", errors.New("pq: relation \"missing\" does not exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDownError(tt.err); got != tt.want {
				t.Errorf("IsDownError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
