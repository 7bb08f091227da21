// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "testing"

func TestEvalBinOpArithmetic(t *testing.T) {
	cases := []struct {
		op   BinOp
		l, r int64
		want int64
	}{
		{OpAdd, 2, 3, 5},
		{OpSub, 2, 3, -1},
		{OpMul, 4, 3, 12},
	}
	for _, c := range cases {
		got := evalBinOp(c.op, Int(c.l), Int(c.r))
		if got != Value(Int(c.want)) {
			t.Errorf("evalBinOp(%v, %d, %d) = %v, want %d", c.op, c.l, c.r, got, c.want)
		}
	}
}

// TestFloorDivMod pins floor (not truncating) division/modulo,
// matching the source language's own div/mod semantics.
func TestFloorDivMod(t *testing.T) {
	cases := []struct{ a, b, q, r int64 }{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
	}
	for _, c := range cases {
		q, r := floorDivMod(c.a, c.b)
		if q != c.q || r != c.r {
			t.Errorf("floorDivMod(%d, %d) = %d, %d; want %d, %d", c.a, c.b, q, r, c.q, c.r)
		}
	}
}

func TestEvalBinOpDivisionByZeroPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("division by zero should panic with a RuntimeError")
		}
		if _, ok := r.(*RuntimeError); !ok {
			t.Fatalf("panic value = %T, want *RuntimeError", r)
		}
	}()
	evalBinOp(OpDiv, Int(1), Int(0))
}

func TestEvalBinOpAndOrAreNonShortCircuiting(t *testing.T) {
	if got := evalBinOp(OpAnd, Bool(false), Bool(true)); got != Value(Bool(false)) {
		t.Errorf("false && true = %v, want false", got)
	}
	if got := evalBinOp(OpOr, Bool(true), Bool(false)); got != Value(Bool(true)) {
		t.Errorf("true || false = %v, want true", got)
	}
	// A short-circuiting && would never look at its right operand once
	// the left is false; this one still type-checks it.
	func() {
		defer func() {
			if recover() == nil {
				t.Error("false && 1 should still examine the right operand and fail")
			}
		}()
		evalBinOp(OpAnd, Bool(false), Int(1))
	}()
}

func TestEvalBinOpComparisons(t *testing.T) {
	if evalBinOp(OpLt, Int(1), Int(2)) != Value(Bool(true)) {
		t.Error("1 < 2 should be true")
	}
	if evalBinOp(OpGe, Int(2), Int(2)) != Value(Bool(true)) {
		t.Error("2 >= 2 should be true")
	}
	if evalBinOp(OpNeq, Int(1), Int(2)) != Value(Bool(true)) {
		t.Error("1 != 2 should be true")
	}
}

func TestEvalUnOp(t *testing.T) {
	if evalUnOp(OpNeg, Int(5)) != Value(Int(-5)) {
		t.Error("-5 should be -5")
	}
	if evalUnOp(OpNot, Bool(true)) != Value(Bool(false)) {
		t.Error("!true should be false")
	}
}

func TestRequireIntRejectsNonInt(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("requireInt(Bool) should panic")
		}
	}()
	requireInt(Bool(true))
}
