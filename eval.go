// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "code.hybscloud.com/kont"

// raise aborts the enclosing phrase with a fatal, non-catchable runtime
// error. It panics; the only place that recovers
// is obey.go's top-level dispatch, which converts the panic back into
// a returned error so the REPL can report it and keep going.
func raise(format string, args ...any) {
	panic(RuntimeErrorf(format, args...))
}

// bindV sequences m into f, except that an Escalated value produced by
// m short-circuits: f is never called and the same Escalated becomes
// the result. This is how "capture up to pX" is simulated without a
// native delimited-continuation primitive — every ordinary composition
// point in eval below threads its sub-evaluations through bindV so an
// escalating Throw/Send/Receive/unmatched-Match blows past whichever
// Apply/If/Let/etc. it is nested inside, untouched, rather than being
// inspected as ordinary data.
//
// An ordinary (non-Escalated) Exception value — SendP/ReceiveP's raw
// result on a closed channel — is deliberately NOT special-cased here:
// it flows through exactly like an Int or Bool would, so a construct
// downstream that type-checks its operand (If's condition, BinPrim's
// operands) rejects it the same way it would any other wrong-typed
// value.
//
// Two positions deliberately use plain kont.Bind instead of bindV:
// Match's scrutinee and TryCatch's body. Both need to see whatever
// value arrives — Escalated included — to decide for themselves
// whether to propagate it (Match) or unwrap and attempt to handle it
// (TryCatch, which is the actual pX this Escalated value was captured
// up to).
func bindV(m kont.Eff[Value], f func(Value) kont.Eff[Value]) kont.Eff[Value] {
	return kont.Bind(m, func(v Value) kont.Eff[Value] {
		if esc, ok := v.(Escalated); ok {
			return kont.Pure[Value](esc)
		}
		return f(v)
	})
}

// asException reports whether v is, or wraps, an Exception: either
// directly (SendP/ReceiveP's raw result) or via Escalated (everything
// that captured up to pX). TryCatch is the only place this matters,
// since it is the construct that actually realizes pX.
func asException(v Value) (Exception, bool) {
	if esc, ok := v.(Escalated); ok {
		exc, ok := esc.Value.(Exception)
		return exc, ok
	}
	exc, ok := v.(Exception)
	return exc, ok
}

// unwrapEscalated strips an in-flight Escalated down to the Exception
// it carries, leaving any other value untouched. The scheduler calls
// this on every task's final value (scheduler.go): an exception prompt
// is installed once per task/Parallel component as well as at
// TryCatch, so an exception still escalating when its task finishes is caught
// there, surfacing as the ordinary Exception a RunParallel caller
// (Obey, or an enclosing Parallel) already knows how to display or
// pattern-match against.
func unwrapEscalated(v Value) Value {
	if esc, ok := v.(Escalated); ok {
		return esc.Value
	}
	return v
}

// listResult is the outcome of evaluating a left-to-right expression
// list (Injector args, Tuple elements): either every element's value,
// in order, or the first Escalated value encountered, which aborts
// the rest and propagates unchanged.
type listResult struct {
	values      []Value
	escalated   Value
	isEscalated bool
}

func evalList(exprs []Expr, env *Env, table *ChannelTable) kont.Eff[listResult] {
	return evalListAcc(exprs, env, table, nil)
}

func evalListAcc(exprs []Expr, env *Env, table *ChannelTable, acc []Value) kont.Eff[listResult] {
	if len(exprs) == 0 {
		return kont.Pure(listResult{values: acc})
	}
	return kont.Bind(eval(exprs[0], env, table), func(v Value) kont.Eff[listResult] {
		if esc, ok := v.(Escalated); ok {
			return kont.Pure(listResult{escalated: esc, isEscalated: true})
		}
		return evalListAcc(exprs[1:], env, table, append(acc, v))
	})
}

// eval big-steps e under env, against the shared channel table.
// Channel operations suspend the returned computation at a sendOp or
// recvOp (ops.go); the scheduler (scheduler.go) drives those to
// completion. Fatal malformed-program conditions raise (panic); a
// language-level exception is an ordinary Value (Exception, or
// Escalated while still in flight to pX) threaded through bindV, never
// a panic.
func eval(e Expr, env *Env, table *ChannelTable) kont.Eff[Value] {
	switch n := e.(type) {
	case Number:
		return kont.Pure[Value](Int(n.Value))

	case Variable:
		v, err := env.Find(n.Name)
		if err != nil {
			panic(err)
		}
		return kont.Pure(v)

	case Lambda:
		return kont.Pure[Value](Closure{Param: n.Param, Captured: env, Body: n.Body})

	case If:
		return bindV(eval(n.Cond, env, table), func(cv Value) kont.Eff[Value] {
			b, ok := cv.(Bool)
			if !ok {
				raise("if: condition must be bool, got %s", TypeName(cv))
			}
			if b {
				return eval(n.Then, env, table)
			}
			return eval(n.Else, env, table)
		})

	case Apply:
		return bindV(eval(n.Fun, env, table), func(fv Value) kont.Eff[Value] {
			return bindV(eval(n.Arg, env, table), func(av Value) kont.Eff[Value] {
				return applyClosure(fv, av, table)
			})
		})

	case Pipe:
		return bindV(eval(n.First, env, table), func(Value) kont.Eff[Value] {
			return eval(n.Second, env, table)
		})

	case Let:
		return evalLet(n.Defn, n.Body, env, table)

	case Injector:
		return kont.Bind(evalList(n.Args, env, table), func(lr listResult) kont.Eff[Value] {
			if lr.isEscalated {
				return kont.Pure[Value](lr.escalated)
			}
			return kont.Pure[Value](Injection{Tag: n.Tag, Args: lr.values})
		})

	case TupleExpr:
		return kont.Bind(evalList(n.Elems, env, table), func(lr listResult) kont.Eff[Value] {
			if lr.isEscalated {
				return kont.Pure[Value](lr.escalated)
			}
			return kont.Pure[Value](Tuple{Elems: lr.values})
		})

	case Match:
		return kont.Bind(eval(n.Scrutinee, env, table), func(v Value) kont.Eff[Value] {
			if esc, ok := v.(Escalated); ok {
				return kont.Pure[Value](esc)
			}
			body, extended, matched, err := matchCases(n.Cases, v, env)
			if err != nil {
				panic(err)
			}
			if !matched {
				return kont.Pure[Value](Escalated{Value: Exception{Value: excMatch}})
			}
			return eval(body, extended, table)
		})

	case NewChan:
		id := table.Fresh()
		table.Update(id, ChannelState{kind: stateEmpty})
		return kont.Pure[Value](ChanHandle{ID: id})

	case Close:
		return bindV(eval(n.Chan, env, table), func(cv Value) kont.Eff[Value] {
			ch, ok := cv.(ChanHandle)
			if !ok {
				raise("close: not a channel, got %s", TypeName(cv))
			}
			if err := table.Close(ch.ID); err != nil {
				panic(err)
			}
			return kont.Pure[Value](Unit{})
		})

	case Send:
		return evalSendEscalating(n.Chan, n.Val, env, table)
	case SendP:
		return evalSend(n.Chan, n.Val, env, table)
	case Receive:
		return evalReceiveEscalating(n.Chan, env, table)
	case ReceiveP:
		return evalReceive(n.Chan, env, table)

	case Parallel:
		effs := make([]kont.Eff[Value], len(n.Components))
		for i, c := range n.Components {
			effs[i] = eval(c, env, table)
		}
		return kont.Bind(kont.Pure[Value](Unit{}), func(Value) kont.Eff[Value] {
			results, err := RunParallel(table, effs)
			if err != nil {
				panic(err)
			}
			return kont.Pure[Value](Tuple{Elems: results})
		})

	case TryCatch:
		return kont.Bind(eval(n.Body, env, table), func(v Value) kont.Eff[Value] {
			exc, isExc := asException(v)
			if !isExc {
				return kont.Pure(v)
			}
			body, extended, matched, err := matchCases(n.Cases, exc.Value, env)
			if err != nil {
				panic(err)
			}
			if !matched {
				return kont.Pure[Value](Escalated{Value: exc})
			}
			return eval(body, extended, table)
		})

	case Throw:
		return bindV(eval(n.E, env, table), func(v Value) kont.Eff[Value] {
			inj, ok := v.(Injection)
			if !ok {
				raise("throw: expected an injection, got %s", TypeName(v))
			}
			return kont.Pure[Value](Escalated{Value: Exception{Value: inj}})
		})

	case BinPrim:
		return bindV(eval(n.Left, env, table), func(lv Value) kont.Eff[Value] {
			return bindV(eval(n.Right, env, table), func(rv Value) kont.Eff[Value] {
				return kont.Pure(evalBinOp(n.Op, lv, rv))
			})
		})

	case MonPrim:
		return bindV(eval(n.Arg, env, table), func(v Value) kont.Eff[Value] {
			return kont.Pure(evalUnOp(n.Op, v))
		})

	default:
		raise("%T is not a recognized expression", e)
		panic("unreachable")
	}
}

func evalSend(chanExpr, valExpr Expr, env *Env, table *ChannelTable) kont.Eff[Value] {
	return bindV(eval(chanExpr, env, table), func(cv Value) kont.Eff[Value] {
		ch, ok := cv.(ChanHandle)
		if !ok {
			raise("send: not a channel, got %s", TypeName(cv))
		}
		return bindV(eval(valExpr, env, table), func(v Value) kont.Eff[Value] {
			return performSend(ch.ID, v)
		})
	})
}

func evalReceive(chanExpr Expr, env *Env, table *ChannelTable) kont.Eff[Value] {
	return bindV(eval(chanExpr, env, table), func(cv Value) kont.Eff[Value] {
		ch, ok := cv.(ChanHandle)
		if !ok {
			raise("receive: not a channel, got %s", TypeName(cv))
		}
		return performRecv(ch.ID)
	})
}

// escalateIfException wraps v in Escalated when it is an ordinary
// Exception, implementing Send/Receive's "the primitive's Exception
// result escapes to the nearest exception prompt; anything else
// passes through untouched".
func escalateIfException(v Value) Value {
	if exc, ok := v.(Exception); ok {
		return Escalated{Value: exc}
	}
	return v
}

// evalSendEscalating is Send: SendP's primitive, wrapped so a resulting
// Exception (e.g. ExcClosed) escapes to the nearest pX instead of
// staying ordinary, inspectable data the way SendP's own result does.
func evalSendEscalating(chanExpr, valExpr Expr, env *Env, table *ChannelTable) kont.Eff[Value] {
	return bindV(evalSend(chanExpr, valExpr, env, table), func(v Value) kont.Eff[Value] {
		return kont.Pure(escalateIfException(v))
	})
}

// evalReceiveEscalating is Receive, symmetric to evalSendEscalating.
func evalReceiveEscalating(chanExpr Expr, env *Env, table *ChannelTable) kont.Eff[Value] {
	return bindV(evalReceive(chanExpr, env, table), func(v Value) kont.Eff[Value] {
		return kont.Pure(escalateIfException(v))
	})
}

func applyClosure(fv, av Value, table *ChannelTable) kont.Eff[Value] {
	switch f := fv.(type) {
	case Closure:
		return eval(f.Body, f.Captured.Define(f.Param, av), table)
	case nativeClosure:
		return kont.Pure(f.apply(av))
	default:
		raise("cannot apply a value of type %s", TypeName(fv))
		panic("unreachable")
	}
}

// evalLet elaborates defn into env and evaluates body under the
// result, short-circuiting on an Escalated value exactly as any other
// sequencing point does.
func evalLet(defn Defn, body Expr, env *Env, table *ChannelTable) kont.Eff[Value] {
	switch d := defn.(type) {
	case Val:
		return bindV(eval(d.Body, env, table), func(v Value) kont.Eff[Value] {
			return eval(body, env.Define(d.Ident, v), table)
		})
	case Rec:
		closure := buildRec(d, env)
		return eval(body, env.Define(d.Ident, closure), table)
	case Data:
		return eval(body, defineData(d, env), table)
	default:
		raise("%T is not a valid definition", defn)
		panic("unreachable")
	}
}

// buildRec ties the self-reference knot for a recursive definition:
// the cell is created first, the closure captures the environment
// that already contains it, then the cell is populated with that
// closure.
func buildRec(d Rec, env *Env) Closure {
	lam, ok := d.Body.(Lambda)
	if !ok {
		raise("rec %s: right-hand side must be a lambda", d.Ident)
	}
	recEnv, cell := env.DefineRec(d.Ident)
	closure := Closure{Param: lam.Param, Captured: recEnv, Body: lam.Body}
	cell.Set(closure)
	return closure
}

// defineData registers one binding per constructor of d: a bare
// nullary Injection for arity 0, a curried nativeClosure chain
// otherwise.
func defineData(d Data, env *Env) *Env {
	for _, ctor := range d.Ctors {
		env = env.Define(ctor.Tag, makeConstructor(ctor))
	}
	return env
}

func makeConstructor(ctor CtorDef) Value {
	if ctor.Arity == 0 {
		return Injection{Tag: ctor.Tag}
	}
	return curriedCtor(ctor.Tag, ctor.Arity, nil)
}

// curriedCtor builds a chain of single-argument closures that
// accumulate args until arity is reached, then produces the
// Injection. Constructors never suspend or throw, so building this
// directly as Go closures (rather than through eval/Expr) is exact.
func curriedCtor(tag string, arity int, collected []Value) Value {
	return nativeClosure{
		arity: arity,
		apply: func(v Value) Value {
			next := append(append([]Value(nil), collected...), v)
			if len(next) == arity {
				return Injection{Tag: tag, Args: next}
			}
			return curriedCtor(tag, arity, next)
		},
	}
}
