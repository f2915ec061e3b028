// Package view holds the per-page coordinators. A coordinator composes the
// cache and the REST clients: it fetches what its page reads, derives the
// rendered data, and after a mutation invalidates exactly the cache keys
// whose displayed data could have changed. Presentation of errors happens
// here and nowhere below.
package view

// Status distinguishes the three render states a page can be in after a load:
// a successful fetch with zero items is an explicit empty state, not a
// loading state and not an error.
type Status int

const (
	StatusReady Status = iota
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

func listStatus(n int) Status {
	if n == 0 {
		return StatusEmpty
	}
	return StatusReady
}
