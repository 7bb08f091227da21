// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import (
	"strconv"
	"strings"
)

// Show renders v in the REPL's display format. Every
// expressible Value variant has a case, and a nativeClosure shows as a
// function; anything else (an Escalated marker, or a future addition
// left unhandled here) is a fatal invariant violation rather than a
// silent fallback.
func Show(v Value) string {
	switch t := v.(type) {
	case Int:
		return strconv.FormatInt(int64(t), 10)
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Unit:
		return "unit"
	case ChanHandle:
		return "<handle " + strconv.FormatUint(uint64(t.ID), 10) + ">"
	case Closure, nativeClosure:
		return "<fundef>"
	case Exception:
		return "<unhandled exception -> " + Show(t.Value) + ">"
	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = Show(e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case Injection:
		if len(t.Args) == 0 {
			return t.Tag
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = Show(a)
		}
		return t.Tag + " " + strings.Join(parts, " ")
	default:
		raise("internal marker value of type %T reached display", v)
		panic("unreachable")
	}
}
