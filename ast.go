// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

// Expr is the parsed-expression sum type, the sole external contract
// between the parser and the evaluator. Every concrete
// node below implements it with a zero-size marker method.
type Expr interface {
	isExpr()
}

// Number is an integer literal.
type Number struct {
	Value int64
}

func (Number) isExpr() {}

// Variable is a reference to a bound name.
type Variable struct {
	Name string
}

func (Variable) isExpr() {}

// Apply is function application, left-associative at the parser:
// f a b parses as Apply(Apply(f, a), b).
type Apply struct {
	Fun Expr
	Arg Expr
}

func (Apply) isExpr() {}

// If is a conditional; Cond must evaluate to Bool.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (If) isExpr() {}

// Lambda is a one-argument function literal.
type Lambda struct {
	Param string
	Body  Expr
}

func (Lambda) isExpr() {}

// Pipe is sequencing: `e1 ; e2` evaluates e1, discards its result, then
// evaluates e2.
type Pipe struct {
	First  Expr
	Second Expr
}

func (Pipe) isExpr() {}

// Let evaluates Defn in the current environment, then Body in the
// extended one.
type Let struct {
	Defn Defn
	Body Expr
}

func (Let) isExpr() {}

// Injector applies a data constructor tag to its argument expressions.
type Injector struct {
	Tag  string
	Args []Expr
}

func (Injector) isExpr() {}

// Case is one arm of a Match or TryCatch: Pattern is itself an Expr
// (Variable or a flattened Injector spine), matched structurally
// rather than evaluated; see match.go.
type Case struct {
	Pattern Expr
	Body    Expr
}

// Match evaluates Scrutinee and tries each Case in order.
type Match struct {
	Scrutinee Expr
	Cases     []Case
}

func (Match) isExpr() {}

// NewChan allocates a fresh, Empty channel and evaluates to its
// handle.
type NewChan struct{}

func (NewChan) isExpr() {}

// Close closes the channel Chan evaluates to.
type Close struct {
	Chan Expr
}

func (Close) isExpr() {}

// Send is the exception-propagating wrapper around SendP: an
// Exception result escapes to the nearest TryCatch.
type Send struct {
	Chan Expr
	Val  Expr
}

func (Send) isExpr() {}

// SendP is the low-level send primitive: its result (Unit or
// Exception(ExcClosed)) is returned as an ordinary value, not
// auto-propagated.
type SendP struct {
	Chan Expr
	Val  Expr
}

func (SendP) isExpr() {}

// Receive is the exception-propagating wrapper around ReceiveP.
type Receive struct {
	Chan Expr
}

func (Receive) isExpr() {}

// ReceiveP is the low-level receive primitive.
type ReceiveP struct {
	Chan Expr
}

func (ReceiveP) isExpr() {}

// Parallel runs every component concurrently under the scheduler and
// evaluates to a Tuple of their results in original order.
type Parallel struct {
	Components []Expr
}

func (Parallel) isExpr() {}

// TryCatch evaluates Body; an Exception result is matched against
// Cases exactly as Match matches a scrutinee, re-propagating on a
// total pattern-match failure.
type TryCatch struct {
	Body  Expr
	Cases []Case
}

func (TryCatch) isExpr() {}

// Throw evaluates E, requires an Injection, and raises it as an
// Exception caught by the nearest TryCatch.
type Throw struct {
	E Expr
}

func (Throw) isExpr() {}

// BinOp names a binary primitive operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// BinPrim is a binary primitive application.
type BinPrim struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (BinPrim) isExpr() {}

// UnOp names a unary primitive operator.
type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

// MonPrim is a unary primitive application.
type MonPrim struct {
	Op  UnOp
	Arg Expr
}

func (MonPrim) isExpr() {}

// TupleExpr is the surface tuple literal, evaluating to a Tuple value.
type TupleExpr struct {
	Elems []Expr
}

func (TupleExpr) isExpr() {}

// Defn is the definition-form sum type: Val, Rec and Data.
type Defn interface {
	isDefn()
	Name() string
}

// Val is a non-recursive binding: name = body.
type Val struct {
	Ident string
	Body  Expr
}

func (Val) isDefn()        {}
func (v Val) Name() string { return v.Ident }

// Rec is a self-referential binding; Body must be a Lambda (any other
// Body is a fatal RuntimeError). It is built via Env.DefineRec so
// Body's own evaluation can see Ident bound to the closure it becomes
// part of.
type Rec struct {
	Ident string
	Body  Expr
}

func (Rec) isDefn()        {}
func (r Rec) Name() string { return r.Ident }

// CtorDef names one constructor of a Data declaration: its tag and
// fixed argument count.
type CtorDef struct {
	Tag   string
	Arity int
}

// Data declares a family of nullary-or-more injections under
// TypeName; it contributes no runtime value itself and records nothing
// under TypeName, only one binding per constructor evaluating to
// either the bare Injection (arity 0) or a curried constructor
// function (arity > 0).
type Data struct {
	TypeName string
	Ctors    []CtorDef
}

func (Data) isDefn() {}
func (d Data) Name() string {
	return d.TypeName
}

// Phrase is a top-level REPL unit: either a bare expression to
// evaluate, or a definition to elaborate into the environment.
type Phrase interface {
	isPhrase()
}

// Calculate evaluates E and displays its result without changing the
// environment (beyond whatever channels it allocates).
type Calculate struct {
	E Expr
}

func (Calculate) isPhrase() {}

// Define elaborates D into the environment and reports the name
// added.
type Define struct {
	D Defn
}

func (Define) isPhrase() {}
