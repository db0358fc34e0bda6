package domain

import "fmt"

// LoadStatus is the phase of a catalog load
type LoadStatus int

const (
	LoadPending LoadStatus = iota
	LoadSucceeded
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadSucceeded:
		return "succeeded"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadState is the tri-state result of loading the catalog. The zero value is
// Pending. Values are immutable: Succeed and Fail return a new state and leave
// the receiver untouched.
type LoadState struct {
	status       LoadStatus
	items        []Item
	endorsements []Endorsement
	reason       error
}

// PendingLoad returns the initial state of a page session
func PendingLoad() LoadState {
	return LoadState{}
}

// Succeed moves a pending load to Succeeded with both collections.
func (s LoadState) Succeed(items []Item, endorsements []Endorsement) (LoadState, error) {
	if s.status != LoadPending {
		return s, fmt.Errorf("succeed from %s: %w", s.status, ErrLoadSettled)
	}
	return LoadState{
		status:       LoadSucceeded,
		items:        append([]Item(nil), items...),
		endorsements: append([]Endorsement(nil), endorsements...),
	}, nil
}

// Fail moves a pending load to Failed. Collections are cleared.
func (s LoadState) Fail(reason error) (LoadState, error) {
	if s.status != LoadPending {
		return s, fmt.Errorf("fail from %s: %w", s.status, ErrLoadSettled)
	}
	if reason == nil {
		reason = ErrLoadFailed
	}
	return LoadState{status: LoadFailed, reason: reason}, nil
}

func (s LoadState) Status() LoadStatus { return s.status }
func (s LoadState) Pending() bool      { return s.status == LoadPending }
func (s LoadState) Succeeded() bool    { return s.status == LoadSucceeded }
func (s LoadState) Failed() bool       { return s.status == LoadFailed }

// Reason returns the failure reason, nil unless Failed
func (s LoadState) Reason() error { return s.reason }

// Items returns a copy of the loaded items (empty unless Succeeded)
func (s LoadState) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Endorsements returns a copy of the loaded endorsements (empty unless Succeeded)
func (s LoadState) Endorsements() []Endorsement {
	return append([]Endorsement(nil), s.endorsements...)
}
