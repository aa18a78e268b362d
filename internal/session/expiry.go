package session

import "time"

// Expiry evaluation is pure arithmetic over absolute instants. Ticks
// re-evaluate wall-clock time rather than accumulating elapsed time, so
// a suspended or missed tick self-corrects on the next one.

// Expired reports whether at has passed. The boundary belongs to
// expired: at == now means expired, not expiring soon. A zero instant
// means "no expiry recorded" and evaluates to not expired (fail open).
func Expired(now, at time.Time) bool {
	if at.IsZero() {
		return false
	}
	return !now.Before(at)
}

// ExpiringSoon reports whether at lies in (now, now+window]. A zero
// instant never warns.
func ExpiringSoon(now, at time.Time, window time.Duration) bool {
	if at.IsZero() {
		return false
	}
	remaining := at.Sub(now)
	return remaining > 0 && remaining <= window
}

// Remaining returns the time left until at, clamped at zero.
func Remaining(now, at time.Time) time.Duration {
	if at.IsZero() {
		return 0
	}
	if remaining := at.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
