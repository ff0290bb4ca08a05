package infra

import "time"

const (
	baseBackoff = 1 * time.Second
	maxBackoff  = 60 * time.Second
)

// CalculateBackoff returns an exponential reconnect delay for the given
// retry count, capped at maxBackoff. The feed never reconnects on its
// own; this paces the caller's explicit reconnection loop.
func CalculateBackoff(retry int) time.Duration {
	if retry < 0 {
		retry = 0
	}
	delay := baseBackoff
	for i := 0; i < retry; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
