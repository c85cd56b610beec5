package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServeAllStopsOthersOnFailure(t *testing.T) {
	boom := errors.New("listen failed")
	stopped := make(chan struct{})

	servers := []func(context.Context) error{
		func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return nil
		},
		func(context.Context) error { return boom },
	}

	done := make(chan error, 1)
	go func() { done <- serveAll(context.Background(), servers) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Errorf("serveAll() = %v, expected %v", err, boom)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serveAll did not return after a server failed")
	}
	select {
	case <-stopped:
	default:
		t.Error("the healthy server should have been told to stop")
	}
}

func TestServeAllStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	servers := []func(context.Context) error{
		func(ctx context.Context) error { <-ctx.Done(); return nil },
		func(ctx context.Context) error { <-ctx.Done(); return nil },
	}

	done := make(chan error, 1)
	go func() { done <- serveAll(ctx, servers) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serveAll() = %v, expected nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serveAll did not return after cancel")
	}
}
