package core

import (
	"strconv"
	"sync/atomic"
)

// MemberID uniquely identifies a member for the lifetime of the room.
// IDs are never reused, even after the member leaves.
type MemberID uint64

// Name renders the display name for this identity ("member1", "member2", ...).
func (id MemberID) Name() string {
	return "member" + strconv.FormatUint(uint64(id), 10)
}

// Allocator hands out member identities. Each call to Next returns a value
// strictly greater than every previously returned one, including under
// concurrent callers.
type Allocator struct {
	last atomic.Uint64
}

// Next allocates the next identity.
func (a *Allocator) Next() MemberID {
	return MemberID(a.last.Add(1))
}
