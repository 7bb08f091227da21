// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "fmt"

// ParseError reports a malformed phrase at a source position.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// parser is a recursive-descent parser over a flat Tok slice, in the
// style of thesephist-ink/daios-ai-msg's own index-based parsers,
// producing the Expr/Defn/Phrase node set ast.go declares.
type parser struct {
	toks []Tok
	pos  int
}

func (p *parser) peek() Tok {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // trailing TokEOF
	}
	return p.toks[p.pos]
}

func (p *parser) advance() Tok {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) check(k TokKind) bool { return p.peek().Kind == k }

func (p *parser) match(k TokKind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k TokKind, what string) (Tok, error) {
	if !p.check(k) {
		t := p.peek()
		return Tok{}, &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf("expected %s, got %s", what, t)}
	}
	return p.advance(), nil
}

func (p *parser) errHere(format string, args ...any) error {
	t := p.peek()
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

// Parse lexes and parses src as one top-level phrase.
func Parse(src string) (Phrase, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	phrase, err := p.parsePhrase()
	if err != nil {
		return nil, err
	}
	if !p.check(TokEOF) {
		return nil, p.errHere("unexpected trailing input")
	}
	return phrase, nil
}

func (p *parser) parsePhrase() (Phrase, error) {
	switch p.peek().Kind {
	case TokVal, TokRec, TokData:
		defn, err := p.parseDefn()
		if err != nil {
			return nil, err
		}
		return Define{D: defn}, nil
	default:
		e, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		return Calculate{E: e}, nil
	}
}

func (p *parser) parseDefn() (Defn, error) {
	switch p.peek().Kind {
	case TokVal:
		p.advance()
		name, err := p.expect(TokIdent, "a binding name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokAssign, "'='"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		return Val{Ident: name.Text, Body: body}, nil

	case TokRec:
		p.advance()
		name, err := p.expect(TokIdent, "a binding name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokAssign, "'='"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		return Rec{Ident: name.Text, Body: body}, nil

	case TokData:
		p.advance()
		// A type name is conventionally capitalized, so it lexes as
		// TokCtor; a lowercase TokIdent is accepted too.
		name := p.peek()
		if !p.match(TokCtor) {
			if _, err := p.expect(TokIdent, "a type name"); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(TokAssign, "'='"); err != nil {
			return nil, err
		}
		ctors, err := p.parseCtorList()
		if err != nil {
			return nil, err
		}
		return Data{TypeName: name.Text, Ctors: ctors}, nil

	default:
		return nil, p.errHere("expected 'val', 'rec' or 'data'")
	}
}

func (p *parser) parseCtorList() ([]CtorDef, error) {
	var ctors []CtorDef
	for {
		tag, err := p.expect(TokCtor, "a constructor name")
		if err != nil {
			return nil, err
		}
		arity := 0
		if p.match(TokLParen) {
			if !p.check(TokRParen) {
				for {
					if _, err := p.expect(TokIdent, "a field name"); err != nil {
						return nil, err
					}
					arity++
					if !p.match(TokComma) {
						break
					}
				}
			}
			if _, err := p.expect(TokRParen, "')'"); err != nil {
				return nil, err
			}
		}
		ctors = append(ctors, CtorDef{Tag: tag.Text, Arity: arity})
		if !p.match(TokPipe) {
			break
		}
	}
	return ctors, nil
}

// parseExpr parses one expression. allowParallel governs whether a
// trailing top-level "|" is consumed as Parallel chaining at this
// level: case bodies (match/try arms) pass false so their own "|"
// is left for the enclosing case list to see as the next arm,
// rather than being folded into a Parallel node. A nested match/try
// appearing as a case body still consumes "|" tokens freely, but
// through parseCaseList's own loop, never through this one, so there
// is no conflict regardless of the flag.
func (p *parser) parseExpr(allowParallel bool) (Expr, error) {
	left, err := p.parseExprUnit()
	if err != nil {
		return nil, err
	}
	for {
		if p.match(TokSemi) {
			right, err := p.parseExprUnit()
			if err != nil {
				return nil, err
			}
			left = Pipe{First: left, Second: right}
			continue
		}
		if allowParallel && p.check(TokPipe) {
			comps := []Expr{left}
			for p.match(TokPipe) {
				c, err := p.parseExprUnit()
				if err != nil {
					return nil, err
				}
				comps = append(comps, c)
			}
			left = Parallel{Components: comps}
			continue
		}
		break
	}
	return left, nil
}

// parseExprUnit parses one keyword-prefixed form or one orExpr, with
// no ";" or "|" chaining of its own — parseExpr's loop owns that.
func (p *parser) parseExprUnit() (Expr, error) {
	switch p.peek().Kind {
	case TokLet:
		return p.parseLet()
	case TokIf:
		return p.parseIf()
	case TokFn:
		return p.parseFn()
	case TokMatch:
		return p.parseMatch()
	case TokTry:
		return p.parseTry()
	case TokThrow:
		return p.parseThrow()
	default:
		return p.parseOr()
	}
}

func (p *parser) parseLet() (Expr, error) {
	p.advance()
	var defn Defn
	if p.check(TokIdent) {
		// "let x = e in body" is shorthand for "let val x = e in body".
		name := p.advance()
		if _, err := p.expect(TokAssign, "'='"); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		defn = Val{Ident: name.Text, Body: rhs}
	} else {
		d, err := p.parseDefn()
		if err != nil {
			return nil, err
		}
		defn = d
	}
	if _, err := p.expect(TokIn, "'in'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	return Let{Defn: defn, Body: body}, nil
}

func (p *parser) parseIf() (Expr, error) {
	p.advance()
	cond, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokThen, "'then'"); err != nil {
		return nil, err
	}
	thenE, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokElse, "'else'"); err != nil {
		return nil, err
	}
	elseE, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	return If{Cond: cond, Then: thenE, Else: elseE}, nil
}

func (p *parser) parseFn() (Expr, error) {
	p.advance()
	param, err := p.expect(TokIdent, "a parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokArrow, "'->'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	return Lambda{Param: param.Text, Body: body}, nil
}

func (p *parser) parseMatch() (Expr, error) {
	p.advance()
	scrutinee, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokWith, "'with'"); err != nil {
		return nil, err
	}
	cases, err := p.parseCaseList()
	if err != nil {
		return nil, err
	}
	return Match{Scrutinee: scrutinee, Cases: cases}, nil
}

func (p *parser) parseTry() (Expr, error) {
	p.advance()
	body, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokCatch, "'catch'"); err != nil {
		return nil, err
	}
	cases, err := p.parseCaseList()
	if err != nil {
		return nil, err
	}
	return TryCatch{Body: body, Cases: cases}, nil
}

func (p *parser) parseThrow() (Expr, error) {
	p.advance()
	e, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	return Throw{E: e}, nil
}

func (p *parser) parseCaseList() ([]Case, error) {
	var cases []Case
	for p.match(TokPipe) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokArrow, "'->'"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		cases = append(cases, Case{Pattern: pat, Body: body})
	}
	if len(cases) == 0 {
		return nil, p.errHere("expected at least one '| pattern -> expr' case")
	}
	return cases, nil
}

// parsePattern parses the pattern grammar, extended
// (per match.go's matchPattern) with integer-literal and tuple
// patterns alongside the core variable/injector forms.
func (p *parser) parsePattern() (Expr, error) {
	switch p.peek().Kind {
	case TokIdent:
		tok := p.advance()
		return Variable{Name: tok.Text}, nil

	case TokInt:
		tok := p.advance()
		return Number{Value: tok.IVal}, nil

	case TokCtor:
		tok := p.advance()
		if p.match(TokLParen) {
			var args []Expr
			if !p.check(TokRParen) {
				for {
					a, err := p.parsePattern()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.match(TokComma) {
						break
					}
				}
			}
			if _, err := p.expect(TokRParen, "')'"); err != nil {
				return nil, err
			}
			return Injector{Tag: tok.Text, Args: args}, nil
		}
		// Spine form: "Cons x xs" flattens to Injector{Cons, [x, xs]},
		// the pattern-side counterpart of parseAtom's TokCtor spine.
		var args []Expr
		for canStartAtom(p.peek().Kind) {
			a, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return Injector{Tag: tok.Text, Args: args}, nil

	case TokLParen:
		p.advance()
		var elems []Expr
		if !p.check(TokRParen) {
			for {
				e, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
				if !p.match(TokComma) {
					break
				}
			}
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return TupleExpr{Elems: elems}, nil

	default:
		return nil, p.errHere("expected a pattern")
	}
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(TokOrOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = BinPrim{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseEq()
	if err != nil {
		return nil, err
	}
	for p.match(TokAndAnd) {
		right, err := p.parseEq()
		if err != nil {
			return nil, err
		}
		left = BinPrim{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseEq covers every comparison operator at one precedence tier:
// BinOp's full comparison set (==, !=, <, <=, >, >=) binds
// the same way, so they share this tier rather than each inventing
// its own.
func (p *parser) parseEq() (Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.peek().Kind {
		case TokEq:
			op = OpEq
		case TokNeq:
			op = OpNeq
		case TokLt:
			op = OpLt
		case TokLe:
			op = OpLe
		case TokGt:
			op = OpGt
		case TokGe:
			op = OpGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = BinPrim{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdd() (Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.peek().Kind {
		case TokPlus:
			op = OpAdd
		case TokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = BinPrim{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMul() (Expr, error) {
	left, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch p.peek().Kind {
		case TokStar:
			op = OpMul
		case TokSlash:
			op = OpDiv
		case TokPercent:
			op = OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		left = BinPrim{Op: op, Left: left, Right: right}
	}
}

func canStartAtom(k TokKind) bool {
	switch k {
	case TokInt, TokIdent, TokCtor, TokLParen, TokNewchan, TokClose,
		TokSend, TokRecv, TokSendp, TokRecvp, TokBang:
		return true
	default:
		return false
	}
}

// parseApp is left-associative application: appExpr := appExpr atom |
// atom, e.g. "f a b" parses as Apply(Apply(f, a), b). TokMinus is
// deliberately excluded from canStartAtom: a "-" following an atom
// must be left for parseAdd to consume as binary subtraction, not
// swallowed here as the start of a unary-negation argument. A literal
// negative argument still needs parentheses, e.g. "f (-1)".
func (p *parser) parseApp() (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for canStartAtom(p.peek().Kind) {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = Apply{Fun: left, Arg: arg}
	}
	return left, nil
}

func (p *parser) parseAtom() (Expr, error) {
	switch p.peek().Kind {
	case TokInt:
		tok := p.advance()
		return Number{Value: tok.IVal}, nil

	case TokIdent:
		tok := p.advance()
		return Variable{Name: tok.Text}, nil

	case TokMinus:
		p.advance()
		a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return MonPrim{Op: OpNeg, Arg: a}, nil

	case TokBang:
		p.advance()
		a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return MonPrim{Op: OpNot, Arg: a}, nil

	case TokNewchan:
		p.advance()
		return NewChan{}, nil

	case TokClose:
		p.advance()
		a, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Close{Chan: a}, nil

	case TokSend:
		p.advance()
		c, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		v, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Send{Chan: c, Val: v}, nil

	case TokSendp:
		p.advance()
		c, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		v, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return SendP{Chan: c, Val: v}, nil

	case TokRecv:
		p.advance()
		c, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Receive{Chan: c}, nil

	case TokRecvp:
		p.advance()
		c, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return ReceiveP{Chan: c}, nil

	case TokCtor:
		tok := p.advance()
		var args []Expr
		for canStartAtom(p.peek().Kind) {
			a, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return Injector{Tag: tok.Text, Args: args}, nil

	case TokLParen:
		p.advance()
		if p.check(TokRParen) {
			return nil, p.errHere("empty parentheses are not an expression; use 'unit'")
		}
		first, err := p.parseExpr(true)
		if err != nil {
			return nil, err
		}
		elems := []Expr{first}
		for p.match(TokComma) {
			e, err := p.parseExpr(true)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return TupleExpr{Elems: elems}, nil

	default:
		return nil, p.errHere("unexpected token in expression")
	}
}
