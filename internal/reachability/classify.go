package reachability

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// network-failure signatures that survive error wrapping as text only.
var downSignatures = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"dial tcp",
}

// IsDownError classifies an error as "backend unreachable". Timeouts and
// network-level failures count; anything else — including authentication
// and permission errors — means the server answered, so it is up.
func IsDownError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range downSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
