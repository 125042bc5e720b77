// Package compiler implements the single-pass Pratt parser that compiles
// Lox source directly to bytecode, with no intermediate AST: every parse
// rule both recognizes syntax and emits the instructions for it in the same
// pass, resolving lexical scopes, locals and upvalues as it goes.
package compiler

import (
	"strconv"

	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/scanner"
	"github.com/loxvm/lox/lang/token"
	"github.com/loxvm/lox/lang/value"
)

const (
	maxLocals   = 256
	maxUpvalues = 256
	maxArgs     = 255
	maxParams   = 255
)

// funcType distinguishes the four syntactic contexts a function body can
// compile in; this governs how `return` is validated and what occupies
// local slot 0.
type funcType uint8

const (
	typeFunction funcType = iota
	typeInitializer
	typeMethod
	typeScript
)

type local struct {
	name       token.Token
	depth      int // -1 until the declaring statement finishes initializing it
	isCaptured bool
}

type upvalueRef struct {
	index   uint8
	isLocal bool
}

// classCompiler tracks the class body currently being compiled, so `this`
// (and, were a superclass clause ever added, `super`) can be validated.
type classCompiler struct {
	enclosing *classCompiler
}

// funcCompiler is one activation of the compiler, one per nested function
// (and one for the top-level script). The chain of funcCompilers linked
// through enclosing is exactly the GC root set the compiler contributes:
// every function object under construction must survive collections
// triggered by constant or string allocation mid-compile.
type funcCompiler struct {
	enclosing *funcCompiler
	function  *value.Function
	typ       funcType

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int
}

// Compiler holds all per-compilation state: the token stream, the parser's
// error/panic flags, and the stack of function and class compiler records.
// A Compiler is single-use; call Compile once and discard it.
type Compiler struct {
	heap *heap.Heap
	scan *scanner.Scanner

	previous token.Token
	current  token.Token

	errors    ErrorList
	panicMode bool

	cur   *funcCompiler
	class *classCompiler
}

// Compile parses source and emits bytecode into a freshly allocated
// top-level Function (the implicit "script" function Lox wraps top-level
// statements in). It returns a non-nil error (an ErrorList) iff any
// diagnostic was reported; the returned Function is nil in that case.
func Compile(h *heap.Heap, source []byte) (*value.Function, error) {
	c := &Compiler{heap: h, scan: scanner.New(source)}

	h.RegisterRoot(c)
	defer h.UnregisterRoot(c)

	c.beginFunction(typeScript, "")
	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	fn := c.endFunction()

	if err := c.errors.Err(); err != nil {
		return nil, err
	}
	return fn, nil
}

// MarkRoots implements heap.RootMarker: every Function under construction,
// from the innermost compiler record out to the script, must survive a
// collection triggered while compiling.
func (c *Compiler) MarkRoots(mark func(value.Object)) {
	for fc := c.cur; fc != nil; fc = fc.enclosing {
		mark(fc.function)
	}
}

// ---- token stream -------------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scan.Scan()
		if c.current.Kind != token.ILLEGAL {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(k token.Kind) bool { return c.current.Kind == k }

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, msg string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// ---- error reporting -----------------------------------------------------

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errors = append(c.errors, CompileError{Line: tok.Line, Msg: errorContext(tok) + msg})
}

func errorContext(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "at end: "
	case token.ILLEGAL:
		return ""
	default:
		return "at '" + tok.Lexeme + "': "
	}
}

// synchronize discards tokens after a parse error until it reaches a
// plausible statement boundary, so one mistake does not cascade into a wall
// of spurious diagnostics.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// ---- bytecode emission ----------------------------------------------------

func (c *Compiler) chunk() *value.Chunk { return &c.cur.function.Chunk }

func (c *Compiler) emitByte(b byte) { c.chunk().Write(b, c.previous.Line) }

func (c *Compiler) emitOp(op Op) { c.emitByte(byte(op)) }

func (c *Compiler) emitOpByte(op Op, operand byte) {
	c.emitByte(byte(op))
	c.emitByte(operand)
}

func (c *Compiler) emitReturn() {
	if c.cur.typ == typeInitializer {
		c.emitOpByte(GET_LOCAL, 0)
	} else {
		c.emitOp(NIL)
	}
	c.emitOp(RETURN)
}

// emitConstant adds v to the current chunk's constant pool and emits a
// CONSTANT instruction for it.
func (c *Compiler) emitConstant(v value.Value) {
	c.emitOpByte(CONSTANT, c.makeConstant(v))
}

func (c *Compiler) makeConstant(v value.Value) byte {
	idx, err := c.chunk().AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

// emitJump writes a jump instruction with a placeholder 16-bit offset,
// returning the offset of the placeholder for patchJump to fill in later.
func (c *Compiler) emitJump(op Op) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk().Code) - offset - 2
	if jump > 0xffff {
		c.error("too much code to jump over")
	}
	c.chunk().Code[offset] = byte(jump >> 8)
	c.chunk().Code[offset+1] = byte(jump)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(LOOP)
	offset := len(c.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("loop body too large")
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

// ---- function compiler records --------------------------------------------

func (c *Compiler) beginFunction(typ funcType, name string) {
	fc := &funcCompiler{enclosing: c.cur, typ: typ, scopeDepth: 0}
	fc.function = c.heap.NewFunction()
	// Join the chain before interning the name, so a collection triggered by
	// that allocation still reaches fc.function through MarkRoots.
	c.cur = fc
	if name != "" {
		fc.function.Name = c.heap.InternString(name)
	}

	// Slot 0 is reserved: the receiver for methods/initializers, otherwise an
	// unaddressable placeholder for the function value itself.
	slotName := ""
	if typ != typeFunction && typ != typeScript {
		slotName = "this"
	}
	c.cur.locals = append(c.cur.locals, local{
		name:  token.Token{Kind: token.IDENTIFIER, Lexeme: slotName},
		depth: 0,
	})
}

func (c *Compiler) endFunction() *value.Function {
	c.emitReturn()
	fn := c.cur.function
	c.cur = c.cur.enclosing
	return fn
}

func (c *Compiler) beginScope() { c.cur.scopeDepth++ }

func (c *Compiler) endScope() {
	c.cur.scopeDepth--
	for len(c.cur.locals) > 0 && c.cur.locals[len(c.cur.locals)-1].depth > c.cur.scopeDepth {
		last := c.cur.locals[len(c.cur.locals)-1]
		if last.isCaptured {
			c.emitOp(CLOSE_UPVALUE)
		} else {
			c.emitOp(POP)
		}
		c.cur.locals = c.cur.locals[:len(c.cur.locals)-1]
	}
}

// ---- declarations and statements ------------------------------------------

func (c *Compiler) declaration() {
	switch {
	case c.match(token.CLASS):
		c.classDeclaration()
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) classDeclaration() {
	c.consume(token.IDENTIFIER, "expect class name.")
	nameTok := c.previous
	nameConstant := c.identifierConstant(nameTok)
	c.declareVariable()

	c.emitOpByte(CLASS, nameConstant)
	c.defineVariable(nameConstant)

	cc := &classCompiler{enclosing: c.class}
	c.class = cc
	defer func() { c.class = c.class.enclosing }()

	c.namedVariable(nameTok, false)
	c.consume(token.LBRACE, "expect '{' before class body.")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RBRACE, "expect '}' after class body.")
	c.emitOp(POP)
}

func (c *Compiler) method() {
	c.consume(token.IDENTIFIER, "expect method name.")
	nameTok := c.previous
	nameConstant := c.identifierConstant(nameTok)

	typ := typeMethod
	if nameTok.Lexeme == "init" {
		typ = typeInitializer
	}
	c.function(typ)
	c.emitOpByte(METHOD, nameConstant)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

func (c *Compiler) function(typ funcType) {
	name := c.previous.Lexeme
	c.beginFunction(typ, name)
	c.beginScope()

	c.consume(token.LPAREN, "expect '(' after function name.")
	if !c.check(token.RPAREN) {
		for {
			c.cur.function.Arity++
			if c.cur.function.Arity > maxParams {
				c.errorAtCurrent("can't have more than 255 parameters.")
			}
			paramConstant := c.parseVariable("expect parameter name.")
			c.defineVariable(paramConstant)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expect ')' after parameters.")
	c.consume(token.LBRACE, "expect '{' before function body.")
	c.block()

	enclosingUpvalues := c.cur.upvalues
	fn := c.endFunction()

	c.emitOpByte(CLOSURE, c.makeConstant(value.Obj(fn)))
	for _, uv := range enclosingUpvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(uv.index)
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("expect variable name.")
	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitOp(NIL)
	}
	c.consume(token.SEMICOLON, "expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after value.")
	c.emitOp(PRINT)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after expression.")
	c.emitOp(POP)
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "expect '}' after block.")
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "expect ')' after condition.")

	thenJump := c.emitJump(JUMP_IF_FALSE)
	c.emitOp(POP)
	c.statement()

	elseJump := c.emitJump(JUMP)
	c.patchJump(thenJump)
	c.emitOp(POP)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk().Code)
	c.consume(token.LPAREN, "expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "expect ')' after condition.")

	exitJump := c.emitJump(JUMP_IF_FALSE)
	c.emitOp(POP)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(POP)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "expect '(' after 'for'.")

	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk().Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "expect ';' after loop condition.")
		exitJump = c.emitJump(JUMP_IF_FALSE)
		c.emitOp(POP)
	}

	if !c.match(token.RPAREN) {
		bodyJump := c.emitJump(JUMP)
		incrementStart := len(c.chunk().Code)
		c.expression()
		c.emitOp(POP)
		c.consume(token.RPAREN, "expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(POP)
	}
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.cur.typ == typeScript {
		c.error("can't return from top-level code.")
	}
	if c.match(token.SEMICOLON) {
		c.emitReturn()
		return
	}
	if c.cur.typ == typeInitializer {
		c.error("can't return a value from an initializer.")
	}
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after return value.")
	c.emitOp(RETURN)
}

// ---- variable resolution ---------------------------------------------------

func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(token.IDENTIFIER, errMsg)
	c.declareVariable()
	if c.cur.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(value.Obj(c.heap.InternString(name.Lexeme)))
}

func (c *Compiler) declareVariable() {
	if c.cur.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := len(c.cur.locals) - 1; i >= 0; i-- {
		l := c.cur.locals[i]
		if l.depth != -1 && l.depth < c.cur.scopeDepth {
			break
		}
		if l.name.Lexeme == name.Lexeme {
			c.error("already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name token.Token) {
	if len(c.cur.locals) >= maxLocals {
		c.error("too many local variables in function.")
		return
	}
	c.cur.locals = append(c.cur.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	if c.cur.scopeDepth == 0 {
		return
	}
	c.cur.locals[len(c.cur.locals)-1].depth = c.cur.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.cur.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(DEFINE_GLOBAL, global)
}

func resolveLocal(fc *funcCompiler, name token.Token) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name.Lexeme == name.Lexeme {
			return i
		}
	}
	return -1
}

// resolveLocalChecked is resolveLocal plus the "own initializer" diagnostic,
// which must run against the compiler issuing the error, not necessarily fc.
func (c *Compiler) resolveLocalChecked(fc *funcCompiler, name token.Token) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name.Lexeme == name.Lexeme {
			if fc.locals[i].depth == -1 {
				c.error("can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func (c *Compiler) addUpvalue(fc *funcCompiler, index byte, isLocal bool) int {
	for i, uv := range fc.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fc.upvalues) >= maxUpvalues {
		c.error("too many closure variables in function.")
		return 0
	}
	fc.upvalues = append(fc.upvalues, upvalueRef{index: index, isLocal: isLocal})
	fc.function.UpvalueCount = len(fc.upvalues)
	return len(fc.upvalues) - 1
}

func (c *Compiler) resolveUpvalue(fc *funcCompiler, name token.Token) int {
	if fc.enclosing == nil {
		return -1
	}
	if localIdx := c.resolveLocalChecked(fc.enclosing, name); localIdx != -1 {
		fc.enclosing.locals[localIdx].isCaptured = true
		return c.addUpvalue(fc, byte(localIdx), true)
	}
	if upvalIdx := c.resolveUpvalue(fc.enclosing, name); upvalIdx != -1 {
		return c.addUpvalue(fc, byte(upvalIdx), false)
	}
	return -1
}

// ---- expressions ------------------------------------------------------------

type precedence uint8

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is indexed directly by token.Kind; 48 comfortably covers every kind
// the scanner currently produces.
var rules [48]parseRule

func rule(k token.Kind, prefix, infix parseFn, prec precedence) {
	rules[k] = parseRule{prefix: prefix, infix: infix, precedence: prec}
}

func init() {
	rule(token.LPAREN, (*Compiler).grouping, (*Compiler).call, precCall)
	rule(token.DOT, nil, (*Compiler).dot, precCall)
	rule(token.MINUS, (*Compiler).unary, (*Compiler).binary, precTerm)
	rule(token.PLUS, nil, (*Compiler).binary, precTerm)
	rule(token.SLASH, nil, (*Compiler).binary, precFactor)
	rule(token.STAR, nil, (*Compiler).binary, precFactor)
	rule(token.BANG, (*Compiler).unary, nil, precNone)
	rule(token.BANG_EQUAL, nil, (*Compiler).binary, precEquality)
	rule(token.EQUAL_EQUAL, nil, (*Compiler).binary, precEquality)
	rule(token.GREATER, nil, (*Compiler).binary, precComparison)
	rule(token.GREATER_EQUAL, nil, (*Compiler).binary, precComparison)
	rule(token.LESS, nil, (*Compiler).binary, precComparison)
	rule(token.LESS_EQUAL, nil, (*Compiler).binary, precComparison)
	rule(token.IDENTIFIER, (*Compiler).variable, nil, precNone)
	rule(token.STRING, (*Compiler).string, nil, precNone)
	rule(token.NUMBER, (*Compiler).number, nil, precNone)
	rule(token.AND, nil, (*Compiler).and, precAnd)
	rule(token.OR, nil, (*Compiler).or, precOr)
	rule(token.FALSE, (*Compiler).literal, nil, precNone)
	rule(token.NIL, (*Compiler).literal, nil, precNone)
	rule(token.TRUE, (*Compiler).literal, nil, precNone)
	rule(token.THIS, (*Compiler).this, nil, precNone)
}

func getRule(k token.Kind) parseRule { return rules[k] }

func (c *Compiler) expression() { c.parsePrecedence(precAssignment) }

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	prefix := getRule(c.previous.Kind).prefix
	if prefix == nil {
		c.error("expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error("invalid assignment target.")
	}
}

func (c *Compiler) number(_ bool) {
	n, _ := strconv.ParseFloat(c.previous.Lexeme, 64)
	c.emitConstant(value.Number(n))
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RPAREN, "expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	op := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch op {
	case token.BANG:
		c.emitOp(NOT)
	case token.MINUS:
		c.emitOp(NEGATE)
	}
}

func (c *Compiler) binary(_ bool) {
	op := c.previous.Kind
	r := getRule(op)
	c.parsePrecedence(r.precedence + 1)

	switch op {
	case token.BANG_EQUAL:
		c.emitOp(EQUAL)
		c.emitOp(NOT)
	case token.EQUAL_EQUAL:
		c.emitOp(EQUAL)
	case token.GREATER:
		c.emitOp(GREATER)
	case token.GREATER_EQUAL:
		c.emitOp(LESS)
		c.emitOp(NOT)
	case token.LESS:
		c.emitOp(LESS)
	case token.LESS_EQUAL:
		c.emitOp(GREATER)
		c.emitOp(NOT)
	case token.PLUS:
		c.emitOp(ADD)
	case token.MINUS:
		c.emitOp(SUBTRACT)
	case token.STAR:
		c.emitOp(MULTIPLY)
	case token.SLASH:
		c.emitOp(DIVIDE)
	}
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitOp(FALSE)
	case token.NIL:
		c.emitOp(NIL)
	case token.TRUE:
		c.emitOp(TRUE)
	}
}

func (c *Compiler) string(_ bool) {
	// Lexeme includes the surrounding quotes; trim them before interning.
	chars := c.previous.Lexeme[1 : len(c.previous.Lexeme)-1]
	c.emitConstant(value.Obj(c.heap.InternString(chars)))
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp Op

	arg := c.resolveLocalChecked(c.cur, name)
	if arg != -1 {
		getOp, setOp = GET_LOCAL, SET_LOCAL
	} else if arg = c.resolveUpvalue(c.cur, name); arg != -1 {
		getOp, setOp = GET_UPVALUE, SET_UPVALUE
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = GET_GLOBAL, SET_GLOBAL
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

func (c *Compiler) and(_ bool) {
	endJump := c.emitJump(JUMP_IF_FALSE)
	c.emitOp(POP)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or(_ bool) {
	elseJump := c.emitJump(JUMP_IF_FALSE)
	endJump := c.emitJump(JUMP)
	c.patchJump(elseJump)
	c.emitOp(POP)
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitOpByte(CALL, argCount)
}

func (c *Compiler) argumentList() byte {
	var count int
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if count == maxArgs {
				c.error("can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expect ')' after arguments.")
	return byte(count)
}

func (c *Compiler) dot(canAssign bool) {
	c.consume(token.IDENTIFIER, "expect property name after '.'.")
	nameConstant := c.identifierConstant(c.previous)

	switch {
	case canAssign && c.match(token.EQUAL):
		c.expression()
		c.emitOpByte(SET_PROPERTY, nameConstant)
	case c.match(token.LPAREN):
		argCount := c.argumentList()
		c.emitOpByte(INVOKE, nameConstant)
		c.emitByte(argCount)
	default:
		c.emitOpByte(GET_PROPERTY, nameConstant)
	}
}

func (c *Compiler) this(_ bool) {
	if c.class == nil {
		c.error("can't use 'this' outside of a class.")
		return
	}
	c.variable(false)
}
