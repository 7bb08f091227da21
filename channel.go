// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// ChannelID is an opaque, monotonically allocated channel reference.
// Ids are never reused: a single atomic counter, advanced once per
// allocation.
type ChannelID uint32

// ChannelState is the state machine for a single rendezvous channel.
// Empty and Closed carry no payload. WR/WW park one side's affine
// suspension handle (party) plus, for WR, the value being sent; a
// second same-side arrival (a further sender while one WR is already
// parked, or a further receiver while one WW is) chains behind it in
// successor via queueBehind, rather than being refused. Ready
// is the transient "one side just rendezvoused" state: ready is the
// next runnable continuation for that side, successor is whatever
// remains parked (or not) for the channel once ready is drained.
type ChannelState struct {
	kind      stateKind
	sendValue Value                    // meaningful only when kind == stateWR
	party     *kont.Suspension[Value]  // meaningful only when kind == stateWR or stateWW
	ready     runnable                 // meaningful only when kind == stateReady
	successor *ChannelState            // meaningful when kind == stateReady, stateWR, or stateWW
}

type stateKind int

const (
	stateEmpty stateKind = iota
	stateWR
	stateWW
	stateReady
	stateClosed
)

// ChannelTable is the allocation table and state store for every
// channel live in a ProgState. Fresh is monotone; Send/Recv/Close are
// the only transitions the evaluator and scheduler need.
type ChannelTable struct {
	counter atomix.Uint32
	states  map[ChannelID]ChannelState
}

// NewChannelTable returns an empty table with no channels allocated.
func NewChannelTable() *ChannelTable {
	return &ChannelTable{states: make(map[ChannelID]ChannelState)}
}

// Fresh advances the counter and returns the new id. Ids are allocated
// monotonically from 0, so the post-increment value from
// the underlying counter is offset by one. No state is inserted; the
// caller (NewChan in eval.go) must Update it to Empty before the
// handle escapes to user code.
func (t *ChannelTable) Fresh() ChannelID {
	return ChannelID(t.counter.Add(1) - 1)
}

// Contents returns the current state of id (the zero ChannelState,
// kind stateEmpty, for an id never written to).
func (t *ChannelTable) Contents(id ChannelID) ChannelState {
	return t.states[id]
}

// Update replaces the state of id.
func (t *ChannelTable) Update(id ChannelID, s ChannelState) {
	t.states[id] = s
}

// queueBehind appends next behind rest, the chain of same-side parties
// already waiting past the one currently fronting a WR/WW state (used
// when a second sender, or second receiver, arrives before any
// counter-party does). A nil or stateEmpty rest means nothing else is
// queued, so next becomes the whole chain; otherwise next is attached
// behind whatever is already there, preserving arrival order.
func queueBehind(rest *ChannelState, next ChannelState) *ChannelState {
	if rest == nil || rest.kind == stateEmpty {
		return &next
	}
	chained := *rest
	chained.successor = queueBehind(rest.successor, next)
	return &chained
}

// closeChain resolves st and every same-side party queued behind it
// (via queueBehind) into a chain of Ready nodes, each handing its
// party an Exception(ExcClosed), terminating in Closed. A nil or
// stateEmpty st closes out to a bare Closed state.
func closeChain(st *ChannelState) ChannelState {
	if st == nil || st.kind == stateEmpty {
		return ChannelState{kind: stateClosed}
	}
	rest := closeChain(st.successor)
	return ChannelState{
		kind:      stateReady,
		ready:     runResume(st.party, Exception{Value: excClosed}),
		successor: &rest,
	}
}

// Send transitions id for a SendP(id, v) arriving with susp parked
// behind it. blocked is true when susp has
// genuinely been parked in the table (Empty/Ready/WR cases); the
// caller must stop driving and report back to the scheduler. blocked
// is false when the rendezvous (or a close) resolves immediately, in
// which case resumeVal is what susp should be resumed with, locally,
// without a scheduler hop.
func (t *ChannelTable) Send(id ChannelID, v Value, susp *kont.Suspension[Value]) (blocked bool, resumeVal Value) {
	st := t.Contents(id)
	switch st.kind {
	case stateEmpty:
		t.Update(id, ChannelState{kind: stateWR, sendValue: v, party: susp})
		return true, nil
	case stateReady:
		t.Update(id, ChannelState{
			kind:      stateReady,
			ready:     st.ready,
			successor: queueBehind(st.successor, ChannelState{kind: stateWR, sendValue: v, party: susp}),
		})
		return true, nil
	case stateWR:
		// A second sender arriving before any receiver: park it behind
		// the one already waiting rather than refusing the send.
		t.Update(id, ChannelState{
			kind:      stateWR,
			sendValue: st.sendValue,
			party:     st.party,
			successor: queueBehind(st.successor, ChannelState{kind: stateWR, sendValue: v, party: susp}),
		})
		return true, nil
	case stateWW:
		t.Update(id, ChannelState{
			kind:      stateReady,
			ready:     runResume(st.party, v),
			successor: restOrEmpty(st.successor),
		})
		return false, Unit{}
	case stateClosed:
		return false, Exception{Value: excClosed}
	default:
		panic("rendez: send on channel in an invalid state")
	}
}

// Recv transitions id for a ReceiveP(id) arriving with susp parked
// behind it, symmetric to Send.
func (t *ChannelTable) Recv(id ChannelID, susp *kont.Suspension[Value]) (blocked bool, resumeVal Value) {
	st := t.Contents(id)
	switch st.kind {
	case stateEmpty:
		t.Update(id, ChannelState{kind: stateWW, party: susp})
		return true, nil
	case stateReady:
		t.Update(id, ChannelState{
			kind:      stateReady,
			ready:     st.ready,
			successor: queueBehind(st.successor, ChannelState{kind: stateWW, party: susp}),
		})
		return true, nil
	case stateWW:
		// A second receiver arriving before any sender: park it behind
		// the one already waiting rather than refusing the receive.
		t.Update(id, ChannelState{
			kind:      stateWW,
			party:     st.party,
			successor: queueBehind(st.successor, ChannelState{kind: stateWW, party: susp}),
		})
		return true, nil
	case stateWR:
		t.Update(id, ChannelState{
			kind:      stateReady,
			ready:     runResume(st.party, Unit{}),
			successor: restOrEmpty(st.successor),
		})
		return false, st.sendValue
	case stateClosed:
		return false, Exception{Value: excClosed}
	default:
		panic("rendez: receive on channel in an invalid state")
	}
}

// restOrEmpty normalizes a possibly-nil successor chain (nothing
// queued behind the party that just rendezvoused) to an explicit
// stateEmpty node.
func restOrEmpty(rest *ChannelState) *ChannelState {
	if rest == nil {
		return &ChannelState{kind: stateEmpty}
	}
	return rest
}

// Close transitions id to closed. From WR/WW, every party parked on id
// (the one fronting the state, plus any chained behind it via
// queueBehind) is handed a one-step runnable that will resume it with
// Exception(ExcClosed) the next time the scheduler drains this
// channel's Ready slots; the channel is sealed immediately afterward
// (or immediately, if nothing was parked). From Ready, the pending
// ready runnable is kept and its successor is replaced by Closed:
// parties queued in that successor are not resumed.
func (t *ChannelTable) Close(id ChannelID) error {
	st := t.Contents(id)
	switch st.kind {
	case stateEmpty:
		t.Update(id, ChannelState{kind: stateClosed})
		return nil
	case stateReady:
		t.Update(id, ChannelState{
			kind:      stateReady,
			ready:     st.ready,
			successor: &ChannelState{kind: stateClosed},
		})
		return nil
	case stateWR, stateWW:
		t.Update(id, closeChain(&st))
		return nil
	case stateClosed:
		return RuntimeErrorf("channel %d is already closed", id)
	default:
		return RuntimeErrorf("channel %d is in an invalid state", id)
	}
}
