// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "fmt"

// Value is the tagged sum of runtime values expressible in the source
// language, plus nativeClosure, an internal constructor
// function that never reaches the surface syntax directly, and
// Escalated, the internal in-flight exception marker.
type Value interface {
	isValue()
}

// Unit is the single value of the unit type.
type Unit struct{}

func (Unit) isValue() {}

// Int is an arbitrary-precision-free signed integer value. int64 is
// enough range for the source language's numeric literals and
// arithmetic; there is no overflow checking — plain unboxed
// arithmetic rather than defensive wrapping.
type Int int64

func (Int) isValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) isValue() {}

// ChanHandle is a first-class reference to a channel allocated in a
// ChannelTable.
type ChanHandle struct {
	ID ChannelID
}

func (ChanHandle) isValue() {}

// Closure is a one-argument lambda closing over its defining
// environment. Recursive closures (see buildRec in eval.go) capture an
// environment that, in turn, contains the closure itself.
type Closure struct {
	Param    string
	Captured *Env
	Body     Expr
}

func (Closure) isValue() {}

// Injection is an algebraic-data constructor application: a tag plus
// its (possibly empty) argument values. Exceptions are injections
// wrapped in Exception once they propagate through a throw.
type Injection struct {
	Tag  string
	Args []Value
}

func (Injection) isValue() {}

// Tuple is a fixed-size, heterogeneous product value, produced by
// Parallel and by the surface tuple literal.
type Tuple struct {
	Elems []Value
}

func (Tuple) isValue() {}

// Exception wraps an Injection that either escaped to pX (Throw, an
// unmatched Match, or Send/Receive finding the underlying SendP/
// ReceiveP result to be Exception) or came straight back from
// SendP/ReceiveP on a closed channel. In the latter case it is
// ordinary data like any other Value, with no special treatment from
// bindV; see Escalated for the wrapper that actually realizes pX's
// "capture up to" behavior.
type Exception struct {
	Value Value
}

func (Exception) isValue() {}

// Escalated wraps an Exception that is in flight toward the nearest
// pX: Throw, an unmatched Match, and Send/Receive's wrapping of a
// SendP/ReceiveP result that came back Exception all produce one. It
// is the mechanism "capture up to pX" is implemented with — every
// ordinary sequencing point in eval.go threads its sub-evaluations
// through bindV, which short-circuits on Escalated, so it blows past
// whichever If/Match/BinPrim/etc. it is nested inside without being
// inspected as ordinary data. Match's scrutinee looks at one only to
// propagate it further rather than pattern matching against it; only
// TryCatch's body (this value's actual pX, which either handles the
// inner Exception or re-escalates it) and the scheduler
// (unwrapEscalated, on each finished task's value) ever unwrap
// one. SendP/ReceiveP never produce this wrapper, which is exactly why
// their raw Exception(ExcClosed) result stays ordinary, inspectable
// data subject to normal type-checking. Escalated must never reach
// Show or a pattern match; the boundaries that could observe one
// (TryCatch, the top-level phrase, each Parallel component) all strip
// it before anything else looks at the value.
type Escalated struct {
	Value Value
}

func (Escalated) isValue() {}

// nativeClosure is a constructor function built directly by defineData
// rather than an Expr/Closure pair: Data's constructors never suspend
// or throw, so there is nothing for an Expr body to express beyond
// "collect arity arguments, then produce the Injection".
type nativeClosure struct {
	arity int
	apply func(Value) Value
}

func (nativeClosure) isValue() {}

// Equals implements value equality: only Int,
// Bool, Unit and two Exceptions (by inner value) compare; anything
// else is a runtime error signaled by the second return value.
func Equals(a, b Value) (bool, error) {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		if !ok {
			return false, RuntimeErrorf("cannot compare %s with %s", TypeName(a), TypeName(b))
		}
		return av == bv, nil
	case Bool:
		bv, ok := b.(Bool)
		if !ok {
			return false, RuntimeErrorf("cannot compare %s with %s", TypeName(a), TypeName(b))
		}
		return av == bv, nil
	case Unit:
		_, ok := b.(Unit)
		if !ok {
			return false, RuntimeErrorf("cannot compare %s with %s", TypeName(a), TypeName(b))
		}
		return true, nil
	case Exception:
		bv, ok := b.(Exception)
		if !ok {
			return false, RuntimeErrorf("cannot compare %s with %s", TypeName(a), TypeName(b))
		}
		return Equals(av.Value, bv.Value)
	default:
		return false, RuntimeErrorf("equality is not defined for %s", TypeName(a))
	}
}

// TypeName names a Value's runtime tag for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case Unit:
		return "unit"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case ChanHandle:
		return "chan"
	case Closure, nativeClosure:
		return "function"
	case Injection:
		return "injection"
	case Tuple:
		return "tuple"
	case Exception:
		return "exception"
	default:
		return fmt.Sprintf("%T", v)
	}
}
