package core

import (
	"sync"
	"testing"
)

func TestMemberIDName(t *testing.T) {
	cases := []struct {
		id   MemberID
		want string
	}{
		{1, "member1"},
		{2, "member2"},
		{10, "member10"},
		{1234, "member1234"},
	}
	for _, tc := range cases {
		if got := tc.id.Name(); got != tc.want {
			t.Errorf("MemberID(%d).Name() = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestAllocatorStrictlyIncreasing(t *testing.T) {
	var a Allocator
	prev := MemberID(0)
	for i := 0; i < 1000; i++ {
		id := a.Next()
		if id <= prev {
			t.Fatalf("allocation %d: got %d, not greater than previous %d", i, id, prev)
		}
		prev = id
	}
}

func TestAllocatorConcurrentUnique(t *testing.T) {
	const (
		workers = 16
		perWork = 200
	)

	var a Allocator
	ids := make(chan MemberID, workers*perWork)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				ids <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[MemberID]struct{}, workers*perWork)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("id %d allocated twice", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != workers*perWork {
		t.Fatalf("expected %d unique ids, got %d", workers*perWork, len(seen))
	}
}
