// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "code.hybscloud.com/kont"

// ProgState is the REPL's persistent state between phrases: the
// binding environment and the table of channels allocated so far.
// Both are threaded immutably/monotonically: Define
// extends Env, and channel ids are never reused across phrases.
type ProgState struct {
	Env      *Env
	Channels *ChannelTable
}

// NewProgState returns the state a fresh REPL session starts from.
func NewProgState() ProgState {
	return ProgState{Env: InitialEnv(), Channels: NewChannelTable()}
}

// Obey runs one top-level phrase against state, returning the string
// to display and the resulting state. A Calculate runs
// its expression as the sole component of a one-task scheduler run, so
// a top-level Send/Receive suspends and resolves exactly as it would
// nested inside an explicit Parallel; an uncaught Throw surfaces as a
// displayed Exception rather than aborting. A RuntimeError (fatal,
// non-catchable) is recovered here and returned as
// an ordinary error, with the Env unchanged and every channel's state
// restored to what it was before the phrase, so the REPL can discard
// the phrase's effects and prompt again. Ids the failed phrase
// allocated stay used, so ids are still never reused.
func Obey(phrase Phrase, state ProgState) (output string, next ProgState, err error) {
	savedStates := make(map[ChannelID]ChannelState, len(state.Channels.states))
	for id, st := range state.Channels.states {
		savedStates[id] = st
	}
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			state.Channels.states = savedStates
			output, next, err = "", state, re
		}
	}()

	switch p := phrase.(type) {
	case Calculate:
		v := runOne(p.E, state.Env, state.Channels)
		return Show(v), state, nil

	case Define:
		newEnv := elaborateTopLevel(p.D, state.Env, state.Channels)
		return "Added definition: " + p.D.Name(), ProgState{Env: newEnv, Channels: state.Channels}, nil

	default:
		raise("%T is not a recognized phrase", phrase)
		panic("unreachable")
	}
}

// runOne drives e to completion as the sole component of a scheduler
// run, giving a top-level expression the same channel-suspension
// handling any Parallel component gets.
func runOne(e Expr, env *Env, table *ChannelTable) Value {
	results, err := RunParallel(table, []kont.Eff[Value]{eval(e, env, table)})
	if err != nil {
		panic(err)
	}
	return results[0]
}

// elaborateTopLevel mirrors evalLet's three Defn cases, but for a
// top-level Define phrase rather than a Let nested in a larger
// expression: there is no "in" body, only the resulting environment.
func elaborateTopLevel(defn Defn, env *Env, table *ChannelTable) *Env {
	switch d := defn.(type) {
	case Val:
		v := runOne(d.Body, env, table)
		return env.Define(d.Ident, v)
	case Rec:
		return env.Define(d.Ident, buildRec(d, env))
	case Data:
		return defineData(d, env)
	default:
		raise("%T is not a valid definition", defn)
		panic("unreachable")
	}
}
