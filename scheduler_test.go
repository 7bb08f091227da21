// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import (
	"testing"

	"code.hybscloud.com/kont"
)

func TestRunParallelPreservesComponentOrder(t *testing.T) {
	table := NewChannelTable()
	effs := []kont.Eff[Value]{
		kont.Pure[Value](Int(1)),
		kont.Pure[Value](Int(2)),
		kont.Pure[Value](Int(3)),
	}
	results, err := RunParallel(table, effs)
	if err != nil {
		t.Fatalf("RunParallel error: %v", err)
	}
	want := []Value{Int(1), Int(2), Int(3)}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("results[%d] = %v, want %v", i, results[i], w)
		}
	}
}

func TestRunParallelSendRecvRendezvous(t *testing.T) {
	table := NewChannelTable()
	id := table.Fresh()
	table.Update(id, ChannelState{kind: stateEmpty})

	sendEff := bindV(performSend(id, Int(42)), func(Value) kont.Eff[Value] {
		return kont.Pure[Value](Unit{})
	})
	recvEff := performRecv(id)

	results, err := RunParallel(table, []kont.Eff[Value]{sendEff, recvEff})
	if err != nil {
		t.Fatalf("RunParallel error: %v", err)
	}
	if results[0] != Value(Unit{}) {
		t.Fatalf("sender result = %v, want unit", results[0])
	}
	if results[1] != Value(Int(42)) {
		t.Fatalf("receiver result = %v, want 42", results[1])
	}
}

// TestRunParallelDeadlock grounds the scheduler's deadlock diagnostic
// (reporting rather than spinning forever) on two tasks each
// permanently parked on a receive that the other side never arrives
// to satisfy.
func TestRunParallelDeadlock(t *testing.T) {
	table := NewChannelTable()
	a := table.Fresh()
	table.Update(a, ChannelState{kind: stateEmpty})
	b := table.Fresh()
	table.Update(b, ChannelState{kind: stateEmpty})

	waitOnA := performRecv(a)
	waitOnB := performRecv(b)

	results, err := RunParallel(table, []kont.Eff[Value]{waitOnA, waitOnB})
	if err == nil {
		t.Fatalf("expected a deadlock error, got results %v", results)
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("deadlock error type = %T, want *RuntimeError", err)
	}
}
