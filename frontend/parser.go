package frontend

import (
	"fmt"
	"strconv"

	"github.com/sagarpatel/slanguage/feedback"
	"github.com/sagarpatel/slanguage/source"
)

// Parser consumes tokens from a Lexer on demand and builds an AST. It keeps
// a one-token lookahead, maintained implicitly by the Lexer's own peek
// buffer, plus the binary-operator precedence table that drives expression
// parsing
type Parser struct {
	Lexer            *Lexer
	binaryPrecedence map[string]int
}

// NewParser constructs a Parser reading from file
func NewParser(file *source.File) *Parser {
	return &Parser{
		Lexer: NewLexer(file),
		binaryPrecedence: map[string]int{
			"<": 10, "<=": 10, ">": 10, ">=": 10, "==": 10, "!=": 10,
			"+": 20, "-": 20,
			"*": 40, "/": 40, "%": 40,
		},
	}
}

// Parse drives the grammar's top-level production: PROGRAM identifier
// followed by zero or more DEF/EXTERN declarations until END_OF_FILE
func (p *Parser) Parse() (*Module, feedback.Message) {
	if _, msg := p.Lexer.ExpectNext(PROGRAM); msg != nil {
		return nil, msg
	}

	nameTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	mod := &Module{Name: nameTok.Lexeme}

	for {
		tok, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if tok.Kind == END_OF_FILE {
			return mod, nil
		}

		decl, msg := p.parseFunctionDecl()
		if msg != nil {
			return nil, msg
		}

		mod.Funcs = append(mod.Funcs, decl)
	}
}

func (p *Parser) parseFunctionDecl() (*FunctionDecl, feedback.Message) {
	tok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	switch tok.Kind {
	case DEF:
		proto, msg := p.parsePrototype()
		if msg != nil {
			return nil, msg
		}

		body, msg := p.parseCompoundStmt()
		if msg != nil {
			return nil, msg
		}

		if proto.ReturnType != VoidTypeName && !body.Returning {
			return nil, parseLogicError(p, "function with non-void return type must end in a return statement", body.At)
		}

		return &FunctionDecl{Proto: proto, Body: body}, nil

	case EXTERN:
		proto, msg := p.parsePrototype()
		if msg != nil {
			return nil, msg
		}

		return &FunctionDecl{Proto: proto, Body: nil}, nil

	default:
		return nil, parseLogicError(p, fmt.Sprintf("expected %s or %s, found '%s'", DEF, EXTERN, tok.Lexeme), tok.Span.Start)
	}
}

// parsePrototype parses "identifier ( params ) : return-type"
func (p *Parser) parsePrototype() (*Prototype, feedback.Message) {
	nameTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex("("); msg != nil {
		return nil, msg
	}

	proto := &Prototype{Name: nameTok.Lexeme, At: nameTok.Span.Start}

	for {
		tok, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if tok.Kind == COMPLEX && tok.Lexeme == ")" {
			p.Lexer.Next()
			break
		}

		if len(proto.Params) > 0 {
			if _, msg := p.expectComplex(","); msg != nil {
				return nil, msg
			}
		}

		param, msg := p.parseParam()
		if msg != nil {
			return nil, msg
		}

		proto.Params = append(proto.Params, param)
	}

	if _, msg := p.expectComplex(":"); msg != nil {
		return nil, msg
	}

	retTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	proto.ReturnType = retTok.Lexeme

	return proto, nil
}

func (p *Parser) parseParam() (Param, feedback.Message) {
	nameTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return Param{}, msg
	}

	if _, msg := p.expectComplex(":"); msg != nil {
		return Param{}, msg
	}

	typeTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return Param{}, msg
	}

	return Param{Name: nameTok.Lexeme, Type: typeTok.Lexeme}, nil
}

// parseCompoundStmt parses "{ statements }", tagging the compound as
// "returning" iff its last statement is a ReturnStmt, per §4.2
func (p *Parser) parseCompoundStmt() (*CompoundStmt, feedback.Message) {
	openTok, msg := p.expectComplex("{")
	if msg != nil {
		return nil, msg
	}

	compound := &CompoundStmt{At: openTok.Span.Start}

	for {
		tok, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if tok.Kind == COMPLEX && tok.Lexeme == "}" {
			p.Lexer.Next()
			break
		}

		if tok.Kind == END_OF_FILE {
			return nil, parseLogicError(p, "unexpected end of file, expected '}'", tok.Span.Start)
		}

		stmt, msg := p.parseStmt()
		if msg != nil {
			return nil, msg
		}

		compound.Statements = append(compound.Statements, stmt)
	}

	if n := len(compound.Statements); n > 0 {
		if _, ok := compound.Statements[n-1].(*ReturnStmt); ok {
			compound.Returning = true
		}
	}

	return compound, nil
}

// parseStmt dispatches on the leading token per the table in §4.2
func (p *Parser) parseStmt() (Stmt, feedback.Message) {
	tok, msg := p.Lexer.Peek()
	if msg != nil {
		return nil, msg
	}

	switch tok.Kind {
	case LET:
		return p.parseDeclStmt()
	case IF:
		return p.parseIfStmt()
	case WHILE:
		return p.parseWhileStmt()
	case FOR:
		return p.parseForStmt()
	case BREAK:
		p.Lexer.Next()
		return &BreakStmt{At: tok.Span.Start}, nil
	case CONTINUE:
		p.Lexer.Next()
		return &ContinueStmt{At: tok.Span.Start}, nil
	case RETURN:
		return p.parseReturnStmt()
	case ARRAYKW:
		return p.parseArrayLiteralStmt()
	case IDENTIFIER:
		return p.parseAssignOrCallStmt()
	case COMPLEX:
		if tok.Lexeme == "{" {
			return p.parseCompoundStmt()
		}
	}

	return nil, parseLogicError(p, fmt.Sprintf("unexpected token '%s'", tok.Lexeme), tok.Span.Start)
}

// parseDeclStmt parses "cookUp name : type" optionally followed by "= expr"
func (p *Parser) parseDeclStmt() (Stmt, feedback.Message) {
	letTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	nameTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex(":"); msg != nil {
		return nil, msg
	}

	typeTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	peek, msg := p.Lexer.Peek()
	if msg != nil {
		return nil, msg
	}

	if peek.Kind == OPERATOR && peek.Lexeme == "=" {
		p.Lexer.Next()

		init, msg := p.parseExpression(0)
		if msg != nil {
			return nil, msg
		}

		return &DeclInitStmt{Name: nameTok.Lexeme, Type: typeTok.Lexeme, Init: init, At: letTok.Span.Start}, nil
	}

	return &DeclStmt{Name: nameTok.Lexeme, Type: typeTok.Lexeme, At: letTok.Span.Start}, nil
}

// parseAssignOrCallStmt parses "name = expr" or a bare "name ( args )" used
// as a call-as-statement
func (p *Parser) parseAssignOrCallStmt() (Stmt, feedback.Message) {
	nameTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	peek, msg := p.Lexer.Peek()
	if msg != nil {
		return nil, msg
	}

	if peek.Kind == COMPLEX && peek.Lexeme == "(" {
		call, msg := p.parseCallTail(nameTok.Lexeme, nameTok.Span.Start)
		if msg != nil {
			return nil, msg
		}

		return &AssignStmt{Name: SinkName, Value: call, At: nameTok.Span.Start}, nil
	}

	if _, msg := p.expectOperator("="); msg != nil {
		return nil, msg
	}

	value, msg := p.parseExpression(0)
	if msg != nil {
		return nil, msg
	}

	return &AssignStmt{Name: nameTok.Lexeme, Value: value, At: nameTok.Span.Start}, nil
}

// parseIfStmt parses "fr? expr compound" followed by zero or more
// "ong? expr compound" and an optional trailing "justLikeThat? statement"
func (p *Parser) parseIfStmt() (Stmt, feedback.Message) {
	ifTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	cond, msg := p.parseExpression(0)
	if msg != nil {
		return nil, msg
	}

	then, msg := p.parseCompoundStmt()
	if msg != nil {
		return nil, msg
	}

	root := &IfStmt{Cond: cond, Then: then, At: ifTok.Span.Start}
	tail := root

	for {
		peek, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if peek.Kind != ELSEIF {
			break
		}

		p.Lexer.Next()

		elifCond, msg := p.parseExpression(0)
		if msg != nil {
			return nil, msg
		}

		elifThen, msg := p.parseCompoundStmt()
		if msg != nil {
			return nil, msg
		}

		next := &IfStmt{Cond: elifCond, Then: elifThen, At: peek.Span.Start}
		tail.Else = next
		tail = next
	}

	peek, msg := p.Lexer.Peek()
	if msg != nil {
		return nil, msg
	}

	if peek.Kind == ELSE {
		p.Lexer.Next()

		elseBody, msg := p.parseStmt()
		if msg != nil {
			return nil, msg
		}

		tail.Else = elseBody
	}

	return root, nil
}

// parseWhileStmt parses "holdUp expr compound"
func (p *Parser) parseWhileStmt() (Stmt, feedback.Message) {
	whileTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	cond, msg := p.parseExpression(0)
	if msg != nil {
		return nil, msg
	}

	body, msg := p.parseCompoundStmt()
	if msg != nil {
		return nil, msg
	}

	return &WhileStmt{Cond: cond, Body: body, At: whileTok.Span.Start}, nil
}

// parseForStmt parses "ratioed ( init | cond | step ) compound", a
// supplemental form lowered by codegen as its own four-block loop rather
// than sugar over WhileStmt
func (p *Parser) parseForStmt() (Stmt, feedback.Message) {
	forTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex("("); msg != nil {
		return nil, msg
	}

	init, msg := p.parseStmt()
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex("|"); msg != nil {
		return nil, msg
	}

	cond, msg := p.parseExpression(0)
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex("|"); msg != nil {
		return nil, msg
	}

	step, msg := p.parseStmt()
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex(")"); msg != nil {
		return nil, msg
	}

	body, msg := p.parseCompoundStmt()
	if msg != nil {
		return nil, msg
	}

	return &ForStmt{Init: init, Cond: cond, Step: step, Body: body, At: forTok.Span.Start}, nil
}

// parseReturnStmt parses "yeet expr" / "periodt expr"
func (p *Parser) parseReturnStmt() (Stmt, feedback.Message) {
	retTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	value, msg := p.parseExpression(0)
	if msg != nil {
		return nil, msg
	}

	return &ReturnStmt{Value: value, At: retTok.Span.Start}, nil
}

// parseArrayLiteralStmt parses "gang name : type = expr , expr , ...",
// recognized by the grammar but rejected at code generation per §9
func (p *Parser) parseArrayLiteralStmt() (Stmt, feedback.Message) {
	gangTok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	nameTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectComplex(":"); msg != nil {
		return nil, msg
	}

	typeTok, msg := p.Lexer.ExpectNext(IDENTIFIER)
	if msg != nil {
		return nil, msg
	}

	if _, msg := p.expectOperator("="); msg != nil {
		return nil, msg
	}

	node := &ArrayLiteralStmt{Name: nameTok.Lexeme, Type: typeTok.Lexeme, At: gangTok.Span.Start}

	for {
		val, msg := p.parseExpression(0)
		if msg != nil {
			return nil, msg
		}

		node.Values = append(node.Values, val)

		peek, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if peek.Kind == COMPLEX && peek.Lexeme == "," {
			p.Lexer.Next()
			continue
		}

		break
	}

	return node, nil
}

// parseExpression implements precedence-climbing over unary-prefixed atoms
func (p *Parser) parseExpression(precedence int) (Expr, feedback.Message) {
	left, msg := p.parseUnary()
	if msg != nil {
		return nil, msg
	}

	for {
		peek, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if peek.Kind != OPERATOR {
			break
		}

		opPrec, ok := p.binaryPrecedence[peek.Lexeme]
		if !ok || opPrec <= precedence {
			break
		}

		p.Lexer.Next()

		right, msg := p.parseExpression(opPrec)
		if msg != nil {
			return nil, msg
		}

		left = &BinaryExpr{Operator: peek.Lexeme, Left: left, Right: right}
	}

	return left, nil
}

// parseUnary parses an optional prefix '+'/'-'/'!' applied to an atom.
// Applying a prefix operator to a CHAR or STRING atom is a parse error
func (p *Parser) parseUnary() (Expr, feedback.Message) {
	peek, msg := p.Lexer.Peek()
	if msg != nil {
		return nil, msg
	}

	if peek.Kind == OPERATOR && (peek.Lexeme == "+" || peek.Lexeme == "-" || peek.Lexeme == "!") {
		p.Lexer.Next()

		operand, msg := p.parseUnary()
		if msg != nil {
			return nil, msg
		}

		switch operand.(type) {
		case *CharExpr, *StringExpr:
			return nil, parseLogicError(p, fmt.Sprintf("cannot apply unary operator '%s' to this literal", peek.Lexeme), peek.Span.Start)
		}

		return &UnaryExpr{Operator: peek.Lexeme, Operand: operand, At: peek.Span.Start}, nil
	}

	return p.parseAtom()
}

// parseAtom parses literals, parenthesized expressions, variable references,
// and calls
func (p *Parser) parseAtom() (Expr, feedback.Message) {
	tok, msg := p.Lexer.Next()
	if msg != nil {
		return nil, msg
	}

	switch tok.Kind {
	case INT:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
		if err != nil {
			return nil, invalidLiteral(p.Lexer, "malformed integer literal", tok.Span.Start)
		}
		return &IntegerExpr{Lexeme: tok.Lexeme, Value: int32(v), At: tok.Span.Start}, nil

	case FLOAT:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, invalidLiteral(p.Lexer, "malformed float literal", tok.Span.Start)
		}
		return &FloatExpr{Lexeme: tok.Lexeme, Value: v, At: tok.Span.Start}, nil

	case BOOL:
		return &BoolExpr{Value: tok.Lexeme == "facts", At: tok.Span.Start}, nil

	case CHAR:
		var b byte
		if len(tok.Lexeme) > 0 {
			b = tok.Lexeme[0]
		}
		return &CharExpr{Value: b, At: tok.Span.Start}, nil

	case STRING:
		return &StringExpr{Value: tok.Lexeme, At: tok.Span.Start}, nil

	case IDENTIFIER:
		peek, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if peek.Kind == COMPLEX && peek.Lexeme == "(" {
			return p.parseCallTail(tok.Lexeme, tok.Span.Start)
		}

		return &VarExpr{Name: tok.Lexeme, At: tok.Span.Start}, nil

	case COMPLEX:
		if tok.Lexeme == "(" {
			inner, msg := p.parseExpression(0)
			if msg != nil {
				return nil, msg
			}

			if _, msg := p.expectComplex(")"); msg != nil {
				return nil, msg
			}

			return inner, nil
		}
	}

	return nil, parseLogicError(p, fmt.Sprintf("expected an expression, found '%s'", tok.Lexeme), tok.Span.Start)
}

// parseCallTail parses "( args )" given that callee and its position have
// already been consumed
func (p *Parser) parseCallTail(callee string, at source.Pos) (Expr, feedback.Message) {
	if _, msg := p.expectComplex("("); msg != nil {
		return nil, msg
	}

	call := &CallExpr{Callee: callee, At: at}

	for {
		peek, msg := p.Lexer.Peek()
		if msg != nil {
			return nil, msg
		}

		if peek.Kind == COMPLEX && peek.Lexeme == ")" {
			p.Lexer.Next()
			break
		}

		if len(call.Args) > 0 {
			if _, msg := p.expectComplex(","); msg != nil {
				return nil, msg
			}
		}

		arg, msg := p.parseExpression(0)
		if msg != nil {
			return nil, msg
		}

		call.Args = append(call.Args, arg)
	}

	return call, nil
}

func (p *Parser) expectComplex(lexeme string) (Token, feedback.Message) {
	tok, msg := p.Lexer.Next()
	if msg != nil {
		return tok, msg
	}

	if tok.Kind == COMPLEX && tok.Lexeme == lexeme {
		return tok, nil
	}

	return tok, parseLogicError(p, fmt.Sprintf("expected '%s', found '%s'", lexeme, tok.Lexeme), tok.Span.Start)
}

func (p *Parser) expectOperator(lexeme string) (Token, feedback.Message) {
	tok, msg := p.Lexer.Next()
	if msg != nil {
		return tok, msg
	}

	if tok.Kind == OPERATOR && tok.Lexeme == lexeme {
		return tok, nil
	}

	return tok, parseLogicError(p, fmt.Sprintf("expected '%s', found '%s'", lexeme, tok.Lexeme), tok.Span.Start)
}

func parseLogicError(p *Parser, description string, pos source.Pos) feedback.Message {
	return feedback.Error{
		Classification: feedback.ParseLogicError,
		File:           p.Lexer.Scanner.File,
		What: feedback.Selection{
			Description: description,
			Span:        source.Span{Start: pos, End: pos},
		},
	}
}
