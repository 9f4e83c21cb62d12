// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/limiter"
	"github.com/MKhiriev/go-sched/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
	ctx      context.Context
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount++
	m.ctx = ctx
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := &Workers{workers: []Worker{
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	}}
	ws.Run(context.Background())

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Run_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	w := &mockWorker{}
	ws := &Workers{workers: []Worker{w}}
	ws.Run(ctx)

	if w.ctx == nil || w.ctx.Value(key{}) != "v" {
		t.Errorf("expected worker to receive the caller's context")
	}
}

func TestNewWorkers(t *testing.T) {
	ws := NewWorkers(config.Workers{LimiterSweepInterval: time.Minute}, limiter.New(1, 1), logger.Nop())

	if len(ws.workers) != 1 {
		t.Fatalf("expected 1 worker, got %d", len(ws.workers))
	}
	if _, ok := ws.workers[0].(*LimiterSweeper); !ok {
		t.Errorf("expected *LimiterSweeper, got %T", ws.workers[0])
	}
}

func TestLimiterSweeper_DropsIdleClients(t *testing.T) {
	l := limiter.New(1, 1)
	l.Allow("10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewLimiterSweeper(l, 10*time.Millisecond, logger.Nop()).Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for l.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("idle client was not swept, %d clients left", l.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, o.id)
}
