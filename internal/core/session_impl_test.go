package core

import (
	"errors"
	"sync"
	"testing"

	"codepair/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []Frame
	full   bool
	closed bool
}

func (f *fakeConn) TrySend(fr Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return errors.New("backpressure")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func join(t *testing.T, s SessionService, cid domain.ConnID, role domain.Role) *fakeConn {
	t.Helper()
	conn := &fakeConn{}
	if _, added := s.Join(cid, NewParticipantSession(role, conn)); !added {
		t.Fatalf("join %s: expected added", cid)
	}
	return conn
}

func TestJoinReturnsSnapshotAndIsIdempotent(t *testing.T) {
	s := NewSession("s1")
	conn := &fakeConn{}
	ps := NewParticipantSession(domain.RoleInterviewer, conn)

	snap, added := s.Join("c1", ps)
	if !added {
		t.Fatal("first join should add")
	}
	if snap.SessionID != "s1" || snap.Role != domain.RoleInterviewer {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Code != "" || snap.ProblemStatement != "" {
		t.Fatalf("new session should start empty: %+v", snap)
	}
	if snap.TestCases == nil || len(snap.TestCases) != 0 {
		t.Fatalf("testCases should be empty, not nil: %+v", snap.TestCases)
	}

	if _, added := s.Join("c1", ps); added {
		t.Fatal("duplicate join must be a no-op")
	}
	if got := s.ParticipantCount(); got != 1 {
		t.Fatalf("participant count = %d, want 1", got)
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	s := NewSession("s1")
	sender := join(t, s, "c1", domain.RoleInterviewer)
	other := join(t, s, "c2", domain.RoleInterviewee)
	third := join(t, s, "c3", domain.RoleInterviewee)

	res := s.Broadcast("c1", Frame(`{"type":"code_updated"}`))
	if res.SentTo != 2 || len(res.Dropped) != 0 {
		t.Fatalf("unexpected publish result: %+v", res)
	}
	if sender.count() != 0 {
		t.Fatal("sender must not receive its own echo")
	}
	if other.count() != 1 || third.count() != 1 {
		t.Fatalf("other members should each get one frame: %d, %d", other.count(), third.count())
	}
}

func TestBroadcastReportsDropped(t *testing.T) {
	s := NewSession("s1")
	join(t, s, "c1", domain.RoleInterviewer)
	slow := &fakeConn{full: true}
	s.Join("c2", NewParticipantSession(domain.RoleInterviewee, slow))
	ok := join(t, s, "c3", domain.RoleInterviewee)

	res := s.Broadcast("c1", Frame(`{}`))
	if res.SentTo != 1 || len(res.Dropped) != 1 {
		t.Fatalf("unexpected publish result: %+v", res)
	}
	if ok.count() != 1 {
		t.Fatal("a slow peer must not block the healthy one")
	}
}

func TestRelayToInterviewersOnly(t *testing.T) {
	s := NewSession("s1")
	interviewer := join(t, s, "i1", domain.RoleInterviewer)
	observer := join(t, s, "i2", domain.RoleInterviewer)
	candidate := join(t, s, "e1", domain.RoleInterviewee)
	peer := join(t, s, "e2", domain.RoleInterviewee)

	res := s.RelayToInterviewers("e1", Frame(`{"type":"candidate_activity"}`))
	if res.SentTo != 2 {
		t.Fatalf("sent to %d interviewers, want 2", res.SentTo)
	}
	if candidate.count() != 0 || peer.count() != 0 {
		t.Fatal("activity must never reach interviewee members")
	}
	if interviewer.count() != 1 || observer.count() != 1 {
		t.Fatal("all interviewers should receive the activity")
	}

	// Sender exclusion also applies when the sender is an interviewer.
	res = s.RelayToInterviewers("i1", Frame(`{}`))
	if res.SentTo != 1 || interviewer.count() != 1 {
		t.Fatalf("interviewer sender must be excluded: %+v", res)
	}
}

func TestDocumentWritesRequireMembership(t *testing.T) {
	s := NewSession("s1")
	join(t, s, "c1", domain.RoleInterviewer)

	if err := s.SetCode("ghost", "x"); !errors.Is(err, ErrStaleMembership) {
		t.Fatalf("SetCode from non-member: got %v", err)
	}
	if err := s.SetTestCases("ghost", nil); !errors.Is(err, ErrStaleMembership) {
		t.Fatalf("SetTestCases from non-member: got %v", err)
	}
	if err := s.SetProblemStatement("ghost", "x"); !errors.Is(err, ErrStaleMembership) {
		t.Fatalf("SetProblemStatement from non-member: got %v", err)
	}
}

func TestLastWriteWins(t *testing.T) {
	s := NewSession("s1")
	join(t, s, "c1", domain.RoleInterviewer)
	join(t, s, "c2", domain.RoleInterviewee)

	if err := s.SetCode("c1", "print(1)"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCode("c2", "print(2)"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTestCases("c1", []domain.TestCase{{Inputs: []any{1, 2}, Output: 3}}); err != nil {
		t.Fatal(err)
	}

	snap, _ := s.Join("c3", NewParticipantSession(domain.RoleInterviewee, &fakeConn{}))
	if snap.Code != "print(2)" {
		t.Fatalf("code = %q, want last write", snap.Code)
	}
	if len(snap.TestCases) != 1 {
		t.Fatalf("testCases = %+v", snap.TestCases)
	}

	// nil replacement normalizes to an empty list.
	if err := s.SetTestCases("c1", nil); err != nil {
		t.Fatal(err)
	}
	// Duplicate join: membership untouched, stored role wins over the
	// newly declared one.
	snap, added := s.Join("c3", NewParticipantSession(domain.RoleInterviewer, &fakeConn{}))
	if added {
		t.Fatal("duplicate join must not add")
	}
	if snap.Role != domain.RoleInterviewee {
		t.Fatalf("role = %q, want stored role", snap.Role)
	}
	if snap.TestCases == nil || len(snap.TestCases) != 0 {
		t.Fatalf("testCases after nil write = %+v", snap.TestCases)
	}
}

func TestLeave(t *testing.T) {
	s := NewSession("s1")
	join(t, s, "c1", domain.RoleInterviewer)
	join(t, s, "c2", domain.RoleInterviewee)

	removed, remaining := s.Leave("c1")
	if !removed || remaining != 1 {
		t.Fatalf("leave c1: removed=%v remaining=%d", removed, remaining)
	}
	removed, remaining = s.Leave("c1")
	if removed || remaining != 1 {
		t.Fatalf("second leave must be a no-op: removed=%v remaining=%d", removed, remaining)
	}
	if removed, remaining = s.Leave("c2"); !removed || remaining != 0 {
		t.Fatalf("leave c2: removed=%v remaining=%d", removed, remaining)
	}
	// A departed connection is never again a broadcast target.
	if res := s.Broadcast("x", Frame(`{}`)); res.SentTo != 0 {
		t.Fatalf("broadcast to empty session sent %d", res.SentTo)
	}
}
