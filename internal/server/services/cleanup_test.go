package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSweep_DeletesOnlyExpired(t *testing.T) {
	r := newFakeRevokedRepo()
	r.tokens["past"] = time.Now().Add(-time.Minute)
	r.tokens["future"] = time.Now().Add(time.Hour)
	rm := &fakeRepoManager{u: newFakeUsersRepo(), r: r}

	s := NewCleanupService(nil, rm, time.Hour, discardLogger())
	s.Sweep(context.Background())

	if _, ok := r.tokens["past"]; ok {
		t.Fatalf("expired entry must be removed")
	}
	if _, ok := r.tokens["future"]; !ok {
		t.Fatalf("future entry must survive")
	}

	// repeated sweeps leave future entries alone
	s.Sweep(context.Background())
	s.Sweep(context.Background())
	if _, ok := r.tokens["future"]; !ok {
		t.Fatalf("future entry must survive any number of sweeps")
	}
}

func TestSweep_SwallowsErrors(t *testing.T) {
	r := newFakeRevokedRepo()
	r.deleteErr = errors.New("db down")
	rm := &fakeRepoManager{u: newFakeUsersRepo(), r: r}

	s := NewCleanupService(nil, rm, time.Hour, discardLogger())
	s.Sweep(context.Background()) // must not panic or propagate
}

func TestRun_StopsOnCancel(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRevokedRepo()}
	s := NewCleanupService(nil, rm, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
