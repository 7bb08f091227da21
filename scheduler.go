// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import (
	"code.hybscloud.com/kont"
	"github.com/sirupsen/logrus"
)

// runnable is a unit of work the scheduler can advance by exactly one
// step: either a fresh computation that has never been stepped, or a
// parked suspension about to be resumed with a known value.
type runnable func() (Value, *kont.Suspension[Value])

func runFresh(eff kont.Eff[Value]) runnable {
	return func() (Value, *kont.Suspension[Value]) { return kont.Step[Value](eff) }
}

func runResume(susp *kont.Suspension[Value], v Value) runnable {
	return func() (Value, *kont.Suspension[Value]) { return susp.Resume(v) }
}

// driveToBoundary runs r and, whenever the channel table resolves a
// send/recv immediately (the counter-party was already present, or the
// channel was closed), keeps resuming locally — "if the result is
// Resume(k), run k; no scheduler hop" — stopping only when the task
// finishes or genuinely parks.
func driveToBoundary(table *ChannelTable, r runnable) (value Value, done bool, parkedOn ChannelID) {
	for {
		v, susp := r()
		if susp == nil {
			return v, true, 0
		}
		switch op := susp.Op().(type) {
		case sendOp:
			blocked, resumeVal := table.Send(op.Chan, op.Val, susp)
			if blocked {
				return nil, false, op.Chan
			}
			r = runResume(susp, resumeVal)
		case recvOp:
			blocked, resumeVal := table.Recv(op.Chan, susp)
			if blocked {
				return nil, false, op.Chan
			}
			r = runResume(susp, resumeVal)
		default:
			panic("rendez: unhandled effect reached the scheduler")
		}
	}
}

// queueItem is either a task to step (run != nil) or a placeholder
// remembering that index's task is still parked on chanWait, to be
// re-checked once it reaches the front of running again.
type queueItem struct {
	index     int
	run       runnable
	isWaiting bool
	chanWait  ChannelID
}

// RunParallel runs every component of a Parallel expression to
// completion under a single cooperative round-robin loop over
// running/ready queues, yielding only at channel operations. Results
// preserve the original component order regardless of completion
// order.
//
// An error is returned only when every remaining task is permanently
// parked with no channel able to make progress — a deadlock, which
// this implementation reports rather than spinning forever.
//
// Each task's finishing value passes through unwrapEscalated before
// landing in results: a task is exactly the scope an exception prompt
// is installed for, so an Escalated value still live when the task
// completes has nowhere further to go and is caught here, the same way
// TryCatch catches one explicitly.
func RunParallel(table *ChannelTable, effs []kont.Eff[Value]) ([]Value, error) {
	n := len(effs)
	logrus.WithField("tasks", n).Debug("rendez: scheduler starting parallel run")
	results := make([]Value, n)
	completed := 0

	running := make([]queueItem, n)
	for i, e := range effs {
		running[i] = queueItem{index: i, run: runFresh(e)}
	}
	var ready []queueItem
	waiting := 0
	progressed := true

	for completed < n {
		if len(running) == 0 {
			if waiting == 0 {
				break
			}
			if !progressed {
				logrus.WithField("waiting", waiting).Debug("rendez: scheduler detected deadlock")
				return nil, RuntimeErrorf("deadlock: %d task(s) permanently parked with no progress possible", waiting)
			}
			running = ready
			ready = nil
			progressed = false
			continue
		}

		item := running[0]
		running = running[1:]

		if item.isWaiting {
			st := table.Contents(item.chanWait)
			if st.kind == stateReady {
				table.Update(item.chanWait, *st.successor)
				next := make([]queueItem, 0, len(running)+1)
				next = append(next, queueItem{index: item.index, run: st.ready})
				next = append(next, running...)
				running = next
				waiting--
				progressed = true
			} else {
				ready = append(ready, item)
			}
			continue
		}

		value, done, parkedOn := driveToBoundary(table, item.run)
		if done {
			results[item.index] = unwrapEscalated(value)
			completed++
			progressed = true
			continue
		}
		ready = append(ready, queueItem{index: item.index, isWaiting: true, chanWait: parkedOn})
		waiting++
	}
	return results, nil
}
