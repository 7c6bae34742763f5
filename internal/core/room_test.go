package core

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegisterAssignsSequentialNames(t *testing.T) {
	room := NewRoom(testLogger())

	for i := 1; i <= 3; i++ {
		_, name := room.Register(&fakeConn{})
		want := fmt.Sprintf("member%d", i)
		if name != want {
			t.Fatalf("registration %d: got name %q, want %q", i, name, want)
		}
	}

	names := room.List()
	if len(names) != 3 {
		t.Fatalf("expected 3 members, got %d", len(names))
	}
	for i, name := range names {
		want := fmt.Sprintf("member%d", i+1)
		if name != want {
			t.Fatalf("list[%d] = %q, want %q", i, name, want)
		}
	}
}

func TestConcurrentRegistrationsDistinct(t *testing.T) {
	const n = 50

	room := NewRoom(testLogger())

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			room.Register(&fakeConn{})
		}()
	}
	wg.Wait()

	names := room.List()
	if len(names) != n {
		t.Fatalf("expected %d members, got %d", n, len(names))
	}
	seen := make(map[string]struct{}, n)
	for _, name := range names {
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = struct{}{}
	}
}

func TestListPreservesInsertionOrderAfterRemoval(t *testing.T) {
	room := NewRoom(testLogger())

	room.Register(&fakeConn{})
	id2, _ := room.Register(&fakeConn{})
	room.Register(&fakeConn{})

	if !room.Deregister(id2) {
		t.Fatal("expected deregister to remove member2")
	}
	room.Register(&fakeConn{})

	got := room.List()
	want := []string{"member1", "member3", "member4"}
	if len(got) != len(want) {
		t.Fatalf("list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list = %v, want %v", got, want)
		}
	}
}

func TestDeregisterIdempotent(t *testing.T) {
	room := NewRoom(testLogger())

	id, _ := room.Register(&fakeConn{})
	if !room.Deregister(id) {
		t.Fatal("first deregister should report removal")
	}
	if room.Deregister(id) {
		t.Fatal("second deregister should be a no-op")
	}
	if room.Deregister(MemberID(999)) {
		t.Fatal("deregistering an unknown id should be a no-op")
	}
	if n := len(room.List()); n != 0 {
		t.Fatalf("expected empty room, got %d members", n)
	}
}

func TestBroadcastReachesEveryoneIncludingSender(t *testing.T) {
	room := NewRoom(testLogger())

	connA, connB, connC := &fakeConn{}, &fakeConn{}, &fakeConn{}
	idA, nameA := room.Register(connA)
	room.Register(connB)
	room.Register(connC)

	room.Broadcast(idA, "hello room")

	for i, conn := range []*fakeConn{connA, connB, connC} {
		evs := conn.received()
		if len(evs) != 1 {
			t.Fatalf("conn %d: expected 1 event, got %d", i, len(evs))
		}
		ev := evs[0]
		if ev.Kind != EventBroadcast || ev.Member != nameA || ev.Text != "hello room" {
			t.Fatalf("conn %d: unexpected event %+v", i, ev)
		}
	}
}

func TestNotifyJoinedIncludesJoiner(t *testing.T) {
	room := NewRoom(testLogger())

	connA, connB := &fakeConn{}, &fakeConn{}
	room.Register(connA)
	_, nameB := room.Register(connB)

	room.NotifyJoined(nameB)

	for i, conn := range []*fakeConn{connA, connB} {
		evs := conn.received()
		if len(evs) != 1 {
			t.Fatalf("conn %d: expected 1 event, got %d", i, len(evs))
		}
		ev := evs[0]
		if ev.Kind != EventBroadcast || ev.Member != "" || ev.Text != "member2 has joined!" {
			t.Fatalf("conn %d: unexpected event %+v", i, ev)
		}
	}
}

func TestBroadcastFailureEvictsMemberOnce(t *testing.T) {
	room := NewRoom(testLogger())

	connA, connB := &fakeConn{}, &fakeConn{}
	idA, _ := room.Register(connA)
	room.Register(connB)

	connB.setRefuse(true)
	room.Broadcast(idA, "are you there?")

	names := room.List()
	if len(names) != 1 || names[0] != "member1" {
		t.Fatalf("expected only member1 to remain, got %v", names)
	}
	if !connB.isClosed() {
		t.Fatal("evicted member's connection should be closed")
	}

	// A sees its own broadcast plus exactly one departure notice.
	evs := connA.received()
	if len(evs) != 2 {
		t.Fatalf("expected 2 events for member1, got %d: %+v", len(evs), evs)
	}
	if evs[0].Text != "are you there?" {
		t.Fatalf("first event should be the broadcast, got %+v", evs[0])
	}
	if evs[1].Member != "" || evs[1].Text != "member2 has left!" {
		t.Fatalf("second event should be the departure notice, got %+v", evs[1])
	}

	// A later deregister of the evicted member changes nothing.
	if room.Deregister(2) {
		t.Fatal("evicted member should already be deregistered")
	}
}

func TestSendToTargetsSingleMember(t *testing.T) {
	room := NewRoom(testLogger())

	connA, connB := &fakeConn{}, &fakeConn{}
	room.Register(connA)
	room.Register(connB)

	ev := &Event{Kind: EventDM, Member: "member1", Text: "psst"}
	if !room.SendTo("member2", ev) {
		t.Fatal("expected member2 to be found")
	}
	if len(connA.received()) != 0 {
		t.Fatal("member1 should not receive the direct message")
	}
	got := connB.received()
	if len(got) != 1 || got[0].Text != "psst" {
		t.Fatalf("unexpected events for member2: %+v", got)
	}

	if room.SendTo("member99", ev) {
		t.Fatal("unknown member should report not found")
	}
}

func TestSendToFailureEvictsRecipient(t *testing.T) {
	room := NewRoom(testLogger())

	connA, connB := &fakeConn{}, &fakeConn{}
	room.Register(connA)
	room.Register(connB)

	connB.setRefuse(true)
	if !room.SendTo("member2", &Event{Kind: EventDM, Member: "member1", Text: "psst"}) {
		t.Fatal("member2 was registered, SendTo should report found")
	}

	names := room.List()
	if len(names) != 1 || names[0] != "member1" {
		t.Fatalf("expected member2 evicted, list = %v", names)
	}
	evs := connA.received()
	if len(evs) != 1 || evs[0].Text != "member2 has left!" {
		t.Fatalf("expected a single departure notice, got %+v", evs)
	}
}
