// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import (
	"fmt"
	"testing"
	"testing/quick"

	"code.hybscloud.com/kont"
)

// TestPropertyRendezvousPreservesPayload restates this package's own
// version of the deleted property_test.go's TestPropertyTransportFIFO:
// an arbitrary payload sent over a fresh channel and received by its
// sole counter-party arrives unchanged, and the sender always resolves
// to Unit regardless of the value carried.
func TestPropertyRendezvousPreservesPayload(t *testing.T) {
	prop := func(payload int32) bool {
		table := NewChannelTable()
		id := table.Fresh()
		table.Update(id, ChannelState{kind: stateEmpty})

		sendEff := performSend(id, Int(payload))
		recvEff := performRecv(id)

		results, err := RunParallel(table, []kont.Eff[Value]{sendEff, recvEff})
		if err != nil {
			return false
		}
		return results[0] == Value(Unit{}) && results[1] == Value(Int(payload))
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyThrowShortCircuits restates the deleted property_test.go's
// TestPropertyErrorShortCircuit over this package's own Exception
// mechanism: whatever arbitrary value is thrown, a Pipe sequenced
// after it never runs — if it did, the second branch's distinct
// tag would show up in the final result instead of the thrown one.
func TestPropertyThrowShortCircuits(t *testing.T) {
	prop := func(thrown, never int32) bool {
		env := InitialEnv()
		table := NewChannelTable()

		thrownTag := fmt.Sprintf("Thrown%d", thrown)
		neverTag := fmt.Sprintf("Never%d", never)
		expr := Pipe{
			First:  Throw{E: Injector{Tag: thrownTag}},
			Second: Injector{Tag: neverTag},
		}
		eff := eval(expr, env, table)
		results, err := RunParallel(table, []kont.Eff[Value]{eff})
		if err != nil {
			return false
		}
		exc, ok := results[0].(Exception)
		if !ok {
			return false
		}
		inj, ok := exc.Value.(Injection)
		return ok && inj.Tag == thrownTag
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Error(err)
	}
}

func TestEvalThrowRequiresAnInjection(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("throwing a non-injection should be a fatal RuntimeError")
		}
	}()
	env := InitialEnv()
	table := NewChannelTable()
	kont.Step[Value](eval(Throw{E: Number{Value: 1}}, env, table))
}

func TestEvalParallelResultOrderMatchesComponentOrder(t *testing.T) {
	env := InitialEnv()
	table := NewChannelTable()
	expr := Parallel{Components: []Expr{
		Number{Value: 1},
		Number{Value: 2},
		Number{Value: 3},
	}}
	v, susp := kont.Step[Value](eval(expr, env, table))
	if susp != nil {
		t.Fatal("a Parallel of pure expressions should never suspend")
	}
	tup, ok := v.(Tuple)
	if !ok || len(tup.Elems) != 3 {
		t.Fatalf("result = %#v, want a 3-tuple", v)
	}
	for i, want := range []Value{Int(1), Int(2), Int(3)} {
		if tup.Elems[i] != want {
			t.Errorf("tup.Elems[%d] = %v, want %v", i, tup.Elems[i], want)
		}
	}
}
