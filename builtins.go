// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

// The runtime pre-defines exactly three nullary injections.
// User code can define more via Data. Of these three, the evaluator
// itself produces ExcClosed (closed channel) and ExcMatch (failed
// match) without user code naming them; ExcInvalid is only ever
// thrown by user code.
var (
	excClosed  = Injection{Tag: "ExcClosed"}
	excInvalid = Injection{Tag: "ExcInvalid"}
	excMatch   = Injection{Tag: "ExcMatch"}
)

// InitialEnv is the environment every fresh ProgState starts from:
// true, false, unit and the three built-in exceptions, and nothing
// else.
func InitialEnv() *Env {
	return MakeEnv([]Binding{
		{Name: "true", Value: Bool(true)},
		{Name: "false", Value: Bool(false)},
		{Name: "unit", Value: Unit{}},
		{Name: "ExcClosed", Value: excClosed},
		{Name: "ExcInvalid", Value: excInvalid},
		{Name: "ExcMatch", Value: excMatch},
	})
}
