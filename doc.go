// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rendez implements a definitional evaluator for a small
// functional, concurrent, exception-bearing language, on algebraic
// effects from [code.hybscloud.com/kont].
//
// Programs are sequences of phrases ([Calculate] or [Define]) read
// one at a time by [Obey], threading an immutable [ProgState] (a
// binding [Env] plus a [ChannelTable]) from one phrase to the next.
//
// # Architecture
//
//   - Surface: [NewLexer]/[Lexer.Scan] and [Parse] produce the
//     [Expr]/[Defn]/[Phrase] node set directly.
//   - Evaluation: [eval] big-steps an [Expr] into a kont.Eff[Value],
//     suspending at a [sendOp]/[recvOp] whenever it touches a channel.
//   - Concurrency: [RunParallel] drives a [Parallel] expression's
//     components under a single cooperative round-robin scheduler,
//     parking and resuming each component's [kont.Suspension] as its
//     channel operations rendezvous against the shared [ChannelTable].
//   - Exceptions: represented as an ordinary [Value] ([Exception]);
//     while in flight to a handler it is wrapped in [Escalated], which
//     every ordinary sequencing point ([bindV]) auto-propagates;
//     [TryCatch] is the construct that catches and matches it.
//
// # Example
//
//	state := rendez.NewProgState()
//	phrase, _ := rendez.Parse("1 + 2 * 3")
//	output, state, _ := rendez.Obey(phrase, state)
//	fmt.Println(output) // "7"
package rendez
