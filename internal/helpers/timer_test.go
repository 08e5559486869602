package helpers

import (
	"testing"
	"time"

	"github.com/evanw/propmangle/internal/logger"
	"github.com/evanw/propmangle/internal/test"
)

func TestTimer(t *testing.T) {
	clock := time.Unix(0, 0)
	now := func() time.Time {
		clock = clock.Add(5 * time.Millisecond)
		return clock
	}

	timer := &Timer{now: now}
	timer.Begin("Total")
	fork := timer.Fork()
	fork.Begin("a.js")
	fork.Begin("Transform")
	fork.End("Transform")
	fork.End("a.js")
	timer.Join(fork)
	timer.End("Total")

	log := logger.NewDeferLog()
	timer.Log(log)
	msgs := log.Done()
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	test.AssertEqual(t, msgs[0].Kind, logger.Verbose)
	test.AssertEqualWithDiff(t, msgs[0].Text, "Timing information (times may not nest hierarchically due to parallelism)"+
		"\n  Total: 25ms"+
		"\n    a.js: 15ms"+
		"\n      Transform: 5ms")
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Begin("a")
	timer.End("a")
	timer.Join(timer.Fork())

	log := logger.NewDeferLog()
	timer.Log(log)
	test.AssertEqual(t, len(log.Done()), 0)
}
