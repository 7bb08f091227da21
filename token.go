// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "fmt"

// TokKind names the lexical category of a Tok.
type TokKind int

const (
	TokEOF TokKind = iota
	TokInt
	TokIdent
	TokCtor // uppercase-leading identifier: a constructor tag

	// keywords
	TokVal
	TokRec
	TokData
	TokLet
	TokIn
	TokIf
	TokThen
	TokElse
	TokFn
	TokMatch
	TokWith
	TokTry
	TokCatch
	TokThrow
	TokNewchan
	TokClose
	TokSend
	TokRecv
	TokSendp
	TokRecvp

	// punctuation and operators
	TokLParen
	TokRParen
	TokComma
	TokPipe  // "|"
	TokArrow // "->"
	TokAssign
	TokSemi
	TokOrOr
	TokAndAnd
	TokEq
	TokNeq
	TokLt
	TokLe
	TokGt
	TokGe
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokPercent
	TokBang
)

var keywords = map[string]TokKind{
	"val":     TokVal,
	"rec":     TokRec,
	"data":    TokData,
	"let":     TokLet,
	"in":      TokIn,
	"if":      TokIf,
	"then":    TokThen,
	"else":    TokElse,
	"fn":      TokFn,
	"match":   TokMatch,
	"with":    TokWith,
	"try":     TokTry,
	"catch":   TokCatch,
	"throw":   TokThrow,
	"newchan": TokNewchan,
	"close":   TokClose,
	"send":    TokSend,
	"recv":    TokRecv,
	"sendp":   TokSendp,
	"recvp":   TokRecvp,
}

// Tok is a single lexical token: its kind, the source text it came
// from (for identifiers, constructors and error messages), a parsed
// literal value for TokInt, and its position for diagnostics.
type Tok struct {
	Kind TokKind
	Text string
	IVal int64
	Line int
	Col  int
}

func (t Tok) String() string {
	if t.Kind == TokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q at %d:%d", t.Text, t.Line, t.Col)
}
