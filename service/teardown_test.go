package service

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		termChan:  make(chan os.Signal, 1),
		doneChan:  make(chan struct{}),
		waitGroup: &sync.WaitGroup{},
		context:   ctx,
		cancel:    cancel,
	}
}

func TestGetTeardownManager(t *testing.T) {
	manager := GetTeardownManager()
	if manager == nil {
		t.Fatal("GetTeardownManager() returned nil")
	}
	if manager != GetTeardownManager() {
		t.Error("GetTeardownManager() did not return the same instance")
	}
	if manager.WaitGroup() != manager.WaitGroup() {
		t.Error("WaitGroup() did not return the same instance")
	}
	if manager.Context() == nil {
		t.Error("Context() returned nil")
	}
}

func TestTeardownManager_Wait(t *testing.T) {
	manager := newTestManager()

	var called int32
	manager.TeardownFunc(func() { atomic.AddInt32(&called, 1) })
	manager.TeardownFunc(func() { atomic.AddInt32(&called, 1) })

	if atomic.LoadInt32(&called) != 0 {
		t.Fatal("Teardown function was called before termination")
	}

	manager.termChan <- os.Interrupt
	go manager.Wait()

	select {
	case <-manager.Done():
		if n := atomic.LoadInt32(&called); n != 2 {
			t.Errorf("Expected 2 teardown calls, got %d", n)
		}
		if manager.Context().Err() == nil {
			t.Error("Expected context to be cancelled")
		}
	case <-time.After(time.Second):
		t.Error("Wait() took too long")
	}
}
