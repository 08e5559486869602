package helpers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/evanw/propmangle/internal/logger"
)

// A nil timer is valid and does nothing, so callers only allocate one when
// verbose logging is enabled.
type Timer struct {
	data  []timerData
	mutex sync.Mutex
	now   func() time.Time
}

type timerData struct {
	time  time.Time
	name  string
	isEnd bool
}

func (t *Timer) time() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *Timer) Begin(name string) {
	if t != nil {
		t.data = append(t.data, timerData{
			name: name,
			time: t.time(),
		})
	}
}

func (t *Timer) End(name string) {
	if t != nil {
		t.data = append(t.data, timerData{
			name:  name,
			time:  t.time(),
			isEnd: true,
		})
	}
}

func (t *Timer) Fork() *Timer {
	if t != nil {
		return &Timer{now: t.now}
	}
	return nil
}

func (t *Timer) Join(other *Timer) {
	if t != nil && other != nil {
		t.mutex.Lock()
		defer t.mutex.Unlock()
		t.data = append(t.data, other.data...)
	}
}

func (t *Timer) Log(log logger.Log) {
	if t == nil {
		return
	}

	type pair struct {
		timerData
		index uint32
	}

	var lines []string
	var stack []pair
	indent := 0

	for _, item := range t.data {
		if !item.isEnd {
			top := pair{timerData: item, index: uint32(len(lines))}
			lines = append(lines, "")
			stack = append(stack, top)
			indent++
		} else {
			indent--
			last := len(stack) - 1
			top := stack[last]
			stack = stack[:last]
			if item.name != top.name {
				panic("Internal error")
			}
			lines[top.index] = fmt.Sprintf("\n  %s%s: %dms",
				strings.Repeat("  ", indent),
				top.name,
				item.time.Sub(top.time).Milliseconds())
		}
	}

	log.AddVerbose(nil, logger.Loc{},
		"Timing information (times may not nest hierarchically due to parallelism)"+strings.Join(lines, ""))
}
