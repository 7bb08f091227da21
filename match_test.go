// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "testing"

func TestMatchPatternVariableAlwaysBinds(t *testing.T) {
	env, ok, err := matchPattern(Variable{Name: "x"}, Int(5), EmptyEnv)
	if err != nil || !ok {
		t.Fatalf("matchPattern(Variable) = %v, %v, %v", env, ok, err)
	}
	v, _ := env.Find("x")
	if v != Value(Int(5)) {
		t.Fatalf("bound x = %v, want 5", v)
	}
}

func TestMatchPatternNumberLiteral(t *testing.T) {
	_, ok, err := matchPattern(Number{Value: 3}, Int(3), EmptyEnv)
	if err != nil || !ok {
		t.Fatalf("matchPattern(3) against Int(3) = %v, %v", ok, err)
	}
	_, ok, err = matchPattern(Number{Value: 3}, Int(4), EmptyEnv)
	if err != nil || ok {
		t.Fatalf("matchPattern(3) against Int(4) = %v, %v, want false", ok, err)
	}
}

func TestMatchPatternNestedConstructor(t *testing.T) {
	pat := Injector{Tag: "Cons", Args: []Expr{Variable{Name: "x"}, Variable{Name: "xs"}}}
	v := Injection{Tag: "Cons", Args: []Value{Int(1), Injection{Tag: "Cons", Args: []Value{Int(2), Injection{Tag: "Nil"}}}}}

	env, ok, err := matchPattern(pat, v, EmptyEnv)
	if err != nil || !ok {
		t.Fatalf("matchPattern(Cons x xs) = %v, %v, %v", env, ok, err)
	}
	x, _ := env.Find("x")
	if x != Value(Int(1)) {
		t.Fatalf("bound x = %v, want 1", x)
	}
	xs, _ := env.Find("xs")
	tail, ok := xs.(Injection)
	if !ok || tail.Tag != "Cons" {
		t.Fatalf("bound xs = %#v, want the Cons tail", xs)
	}
}

func TestMatchPatternArityOrTagMismatchFails(t *testing.T) {
	pat := Injector{Tag: "Cons", Args: []Expr{Variable{Name: "x"}, Variable{Name: "xs"}}}
	_, ok, err := matchPattern(pat, Injection{Tag: "Nil"}, EmptyEnv)
	if err != nil || ok {
		t.Fatalf("Cons pattern against Nil = %v, %v, want no match", ok, err)
	}
}

func TestMatchPatternTuple(t *testing.T) {
	pat := TupleExpr{Elems: []Expr{Variable{Name: "a"}, Number{Value: 2}}}
	env, ok, err := matchPattern(pat, Tuple{Elems: []Value{Int(9), Int(2)}}, EmptyEnv)
	if err != nil || !ok {
		t.Fatalf("tuple pattern match = %v, %v, %v", env, ok, err)
	}
	a, _ := env.Find("a")
	if a != Value(Int(9)) {
		t.Fatalf("bound a = %v, want 9", a)
	}
}

func TestMatchCasesFirstMatchWins(t *testing.T) {
	cases := []Case{
		{Pattern: Injector{Tag: "Cons", Args: []Expr{Variable{Name: "x"}, Variable{Name: "xs"}}}, Body: Variable{Name: "x"}},
		{Pattern: Injector{Tag: "Nil"}, Body: Number{Value: 0}},
	}
	body, _, matched, err := matchCases(cases, Injection{Tag: "Nil"}, EmptyEnv)
	if err != nil || !matched {
		t.Fatalf("matchCases(Nil) = %v, %v, %v", matched, body, err)
	}
	if _, ok := body.(Number); !ok {
		t.Fatalf("matched body = %#v, want the Nil arm's Number{0}", body)
	}
}

func TestMatchCasesNoMatch(t *testing.T) {
	cases := []Case{{Pattern: Injector{Tag: "Nil"}, Body: Number{Value: 0}}}
	_, _, matched, err := matchCases(cases, Int(1), EmptyEnv)
	if err != nil || matched {
		t.Fatalf("matchCases against an unrelated value = %v, %v", matched, err)
	}
}
