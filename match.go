// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

// matchPattern attempts to match pat (itself an Expr restricted to the
// Variable/Injector subset) against v, extending env
// with whatever bindings the pattern produces on success.
//
// A bare Number or TupleExpr pattern is accepted too: literal
// equality, and elementwise matching respectively. Everything else is
// a malformed pattern, which the parser should never produce; it is
// still checked here and reported as a RuntimeError, which eval.go
// raises as a fatal error of the phrase.
func matchPattern(pat Expr, v Value, env *Env) (*Env, bool, error) {
	switch p := pat.(type) {
	case Variable:
		return env.Define(p.Name, v), true, nil

	case Number:
		iv, ok := v.(Int)
		if !ok || int64(iv) != p.Value {
			return env, false, nil
		}
		return env, true, nil

	case Injector:
		inj, ok := v.(Injection)
		if !ok || inj.Tag != p.Tag || len(inj.Args) != len(p.Args) {
			return env, false, nil
		}
		for i, sub := range p.Args {
			var matched bool
			var err error
			env, matched, err = matchPattern(sub, inj.Args[i], env)
			if err != nil {
				return env, false, err
			}
			if !matched {
				return env, false, nil
			}
		}
		return env, true, nil

	case TupleExpr:
		tv, ok := v.(Tuple)
		if !ok || len(tv.Elems) != len(p.Elems) {
			return env, false, nil
		}
		for i, sub := range p.Elems {
			var matched bool
			var err error
			env, matched, err = matchPattern(sub, tv.Elems[i], env)
			if err != nil {
				return env, false, err
			}
			if !matched {
				return env, false, nil
			}
		}
		return env, true, nil

	default:
		return env, false, RuntimeErrorf("%T is not a valid pattern", pat)
	}
}

// matchCases tries each case against v in order, returning the
// extended environment and body of the first match. ok is false if no
// case matched any pattern.
func matchCases(cases []Case, v Value, env *Env) (Expr, *Env, bool, error) {
	for _, c := range cases {
		extended, matched, err := matchPattern(c.Pattern, v, env)
		if err != nil {
			return nil, nil, false, err
		}
		if matched {
			return c.Body, extended, true, nil
		}
	}
	return nil, nil, false, nil
}
