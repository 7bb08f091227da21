// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "fmt"

// RuntimeError is a fatal, non-catchable error: a type mismatch, an
// undefined variable, a double-close, a non-injection throw target, an
// escaping bubble, or any other malformed-program condition. It is
// distinct from Exception, which is a language-level value and is
// catchable by TryCatch.
type RuntimeError struct {
	msg string
}

func (e *RuntimeError) Error() string { return e.msg }

// RuntimeErrorf builds a RuntimeError with a formatted message.
func RuntimeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{msg: fmt.Sprintf(format, args...)}
}
