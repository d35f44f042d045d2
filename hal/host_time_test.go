package hal

import (
	"testing"
	"time"
)

func drainTicks(ch <-chan uint64) []uint64 {
	var out []uint64
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}

func TestHostTimeStepFollowsClock(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTimeWithClock(func() time.Time { return now })

	ht.step(1)
	if got := drainTicks(ht.Ticks()); len(got) != 1 || got[0] != 1 {
		t.Fatalf("first step = %v, want [1]", got)
	}

	now = now.Add(500 * time.Microsecond)
	ht.step(1)
	if got := drainTicks(ht.Ticks()); len(got) != 0 {
		t.Fatalf("sub-tick step = %v, want none", got)
	}

	now = now.Add(2500 * time.Microsecond) // 3ms since first step
	ht.step(1)
	got := drainTicks(ht.Ticks())
	if len(got) != 3 || got[2] != 4 {
		t.Fatalf("step after 3ms = %v, want [2 3 4]", got)
	}
}
