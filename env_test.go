// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "testing"

func TestEnvDefineAndFind(t *testing.T) {
	env := EmptyEnv.Define("x", Int(1))
	v, err := env.Find("x")
	if err != nil || v != Value(Int(1)) {
		t.Fatalf("Find(x) = %v, %v; want 1, nil", v, err)
	}
}

func TestEnvShadowing(t *testing.T) {
	inner := EmptyEnv.Define("x", Int(1)).Define("x", Int(2))
	v, err := inner.Find("x")
	if err != nil || v != Value(Int(2)) {
		t.Fatalf("shadowed Find(x) = %v, %v; want 2, nil", v, err)
	}
}

func TestEnvDefineDoesNotMutateParent(t *testing.T) {
	outer := EmptyEnv.Define("x", Int(1))
	inner := outer.Define("x", Int(2))

	if v, _ := outer.Find("x"); v != Value(Int(1)) {
		t.Fatalf("outer.Find(x) = %v; want unaffected 1", v)
	}
	if v, _ := inner.Find("x"); v != Value(Int(2)) {
		t.Fatalf("inner.Find(x) = %v; want 2", v)
	}
}

func TestEnvFindUndefinedIsError(t *testing.T) {
	if _, err := EmptyEnv.Find("nope"); err == nil {
		t.Fatal("Find on an undefined name should error")
	}
	if _, ok := EmptyEnv.MaybeFind("nope"); ok {
		t.Fatal("MaybeFind on an undefined name should report false")
	}
}

func TestEnvDefineRecTiesTheKnot(t *testing.T) {
	recEnv, cell := EmptyEnv.DefineRec("self")
	closure := Closure{Param: "n", Captured: recEnv}
	cell.Set(closure)

	v, err := recEnv.Find("self")
	if err != nil {
		t.Fatalf("Find(self) error: %v", err)
	}
	got, ok := v.(Closure)
	if !ok || got.Param != "n" {
		t.Fatalf("Find(self) = %#v; want the closure just set", v)
	}
}

func TestMakeEnvOrdersOutsideIn(t *testing.T) {
	env := MakeEnv([]Binding{
		{Name: "x", Value: Int(1)},
		{Name: "x", Value: Int(2)},
	})
	if v, _ := env.Find("x"); v != Value(Int(2)) {
		t.Fatalf("MakeEnv last-wins Find(x) = %v; want 2", v)
	}
}

func TestEnvNames(t *testing.T) {
	env := EmptyEnv.Define("a", Int(1)).Define("b", Int(2))
	names := env.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("Names() = %v; want innermost first [b a]", names)
	}
}
