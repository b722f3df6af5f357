package app

import (
	"errors"
	"sync"
	"testing"

	"codepair/internal/core"
	"codepair/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestIntervieweeCannotCreateSession(t *testing.T) {
	r := NewSessionRegistry()
	_, _, err := r.GetOrCreate("s1", domain.RoleInterviewee)
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
	if _, ok := r.Get("s1"); ok {
		t.Fatal("rejected join must not leave a session behind")
	}
}

func TestInterviewerCreatesThenAnyRoleResolves(t *testing.T) {
	r := NewSessionRegistry()
	created, wasNew, err := r.GetOrCreate("s1", domain.RoleInterviewer)
	if err != nil || !wasNew {
		t.Fatalf("create: sess=%v created=%v err=%v", created, wasNew, err)
	}

	same, wasNew, err := r.GetOrCreate("s1", domain.RoleInterviewee)
	if err != nil || wasNew {
		t.Fatalf("existing session must resolve for an interviewee: created=%v err=%v", wasNew, err)
	}
	if same != created {
		t.Fatal("both roles must resolve to the same session")
	}
}

func TestConcurrentFirstJoinsCreateOneSession(t *testing.T) {
	r := NewSessionRegistry()
	const n = 32
	got := make([]core.SessionService, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, _, err := r.GetOrCreate("s1", domain.RoleInterviewer)
			if err != nil {
				t.Error(err)
				return
			}
			got[i] = sess
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatal("near-simultaneous first joins produced two sessions")
		}
	}
	if len(r.List()) != 1 {
		t.Fatalf("registry holds %d sessions, want 1", len(r.List()))
	}
}

func TestRemoveIfEmpty(t *testing.T) {
	r := NewSessionRegistry()
	sess, _, _ := r.GetOrCreate("s1", domain.RoleInterviewer)

	sess.Join("c1", core.NewParticipantSession(domain.RoleInterviewer, nopConn{}))
	if r.RemoveIfEmpty("s1") {
		t.Fatal("session with a member must not be removed")
	}

	sess.Leave("c1")
	if !r.RemoveIfEmpty("s1") {
		t.Fatal("empty session should be removed")
	}
	if _, ok := r.Get("s1"); ok {
		t.Fatal("registry still resolves a removed session")
	}
	if r.RemoveIfEmpty("s1") {
		t.Fatal("removing twice must report false")
	}
}

func TestRecreateAfterRemovalStartsEmpty(t *testing.T) {
	r := NewSessionRegistry()
	sess, _, _ := r.GetOrCreate("s1", domain.RoleInterviewer)
	sess.Join("c1", core.NewParticipantSession(domain.RoleInterviewer, nopConn{}))
	if err := sess.SetCode("c1", "print(1)"); err != nil {
		t.Fatal(err)
	}
	sess.Leave("c1")
	r.RemoveIfEmpty("s1")

	fresh, created, err := r.GetOrCreate("s1", domain.RoleInterviewer)
	if err != nil || !created {
		t.Fatalf("recreate: created=%v err=%v", created, err)
	}
	snap, _ := fresh.Join("c2", core.NewParticipantSession(domain.RoleInterviewer, nopConn{}))
	if snap.Code != "" {
		t.Fatalf("recreated session remembers prior incarnation: %q", snap.Code)
	}
}
