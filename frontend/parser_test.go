package frontend

import (
	"testing"

	"github.com/sagarpatel/slanguage/source"
)

func parseTestSource(t *testing.T, contents string) (*Module, error) {
	t.Helper()

	p := NewParser(source.NewFile("test.slang", contents))
	mod, msg := p.Parse()
	if msg != nil {
		return nil, fmtMessageError(msg)
	}

	return mod, nil
}

type messageError struct{ text string }

func (e messageError) Error() string { return e.text }

func fmtMessageError(msg interface{ Make(bool) string }) error {
	return messageError{text: msg.Make(false)}
}

func TestParseReturnConstant(t *testing.T) {
	mod, err := parseTestSource(t, `spillingTheTeaAbout demo pluh main(): int { yeet 42 }`)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	if mod.Name != "demo" {
		t.Fatalf("expected module name 'demo', got %q", mod.Name)
	}

	if len(mod.Funcs) != 1 {
		t.Fatalf("expected one function declaration, got %d", len(mod.Funcs))
	}

	fn := mod.Funcs[0]
	if fn.Proto.Name != "main" || fn.Proto.ReturnType != "int" {
		t.Fatalf("unexpected prototype: %+v", fn.Proto)
	}

	if !fn.Body.Returning {
		t.Fatalf("expected body to be tagged returning")
	}

	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(fn.Body.Statements))
	}

	ret, ok := fn.Body.Statements[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("expected a *ReturnStmt, got %T", fn.Body.Statements[0])
	}

	lit, ok := ret.Value.(*IntegerExpr)
	if !ok || lit.Value != 42 {
		t.Fatalf("expected integer literal 42, got %+v", ret.Value)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	mod, err := parseTestSource(t, `spillingTheTeaAbout demo pluh f(a: int, b: int): int { yeet a + b * 2 }`)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	ret := mod.Funcs[0].Body.Statements[0].(*ReturnStmt)
	add, ok := ret.Value.(*BinaryExpr)
	if !ok || add.Operator != "+" {
		t.Fatalf("expected a top-level '+', got %+v", ret.Value)
	}

	if _, ok := add.Left.(*VarExpr); !ok {
		t.Fatalf("expected lhs to be a variable reference, got %T", add.Left)
	}

	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Operator != "*" {
		t.Fatalf("expected rhs to be a '*' binary expression, got %+v", add.Right)
	}
}

func TestParseExternHasNoBody(t *testing.T) {
	mod, err := parseTestSource(t, `spillingTheTeaAbout demo plug puts(s: string): int`)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	fn := mod.Funcs[0]
	if !fn.IsExtern() {
		t.Fatalf("expected extern declaration to have no body")
	}
}

func TestParseWhileWithBreak(t *testing.T) {
	src := `spillingTheTeaAbout demo pluh g(): int {
		cookUp i: int = 0
		holdUp i < 10 {
			fr? i == 5 {
				ghost
			} justLikeThat? {
				i = i + 1
			}
		}
		yeet i
	}`

	mod, err := parseTestSource(t, src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	body := mod.Funcs[0].Body
	if len(body.Statements) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(body.Statements))
	}

	while, ok := body.Statements[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected a *WhileStmt, got %T", body.Statements[1])
	}

	whileBody := while.Body.(*CompoundStmt)
	ifStmt, ok := whileBody.Statements[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected an *IfStmt inside the loop body, got %T", whileBody.Statements[0])
	}

	if ifStmt.Else == nil {
		t.Fatalf("expected the else branch to be present")
	}
}

func TestParseEmptyModule(t *testing.T) {
	mod, err := parseTestSource(t, `spillingTheTeaAbout empty`)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	if len(mod.Funcs) != 0 {
		t.Fatalf("expected zero function declarations, got %d", len(mod.Funcs))
	}
}

func TestParseMissingReturnExpressionIsFatal(t *testing.T) {
	_, err := parseTestSource(t, `spillingTheTeaAbout demo pluh h(): int { yeet }`)
	if err == nil {
		t.Fatalf("expected a parse error naming the missing expression")
	}
}

func TestParseNonVoidWithoutTrailingReturnIsFatal(t *testing.T) {
	_, err := parseTestSource(t, `spillingTheTeaAbout demo pluh h(): int { cookUp x: int = 1 }`)
	if err == nil {
		t.Fatalf("expected a parse error for a non-void function with no trailing return")
	}
}

func TestParseUnaryOnCharLiteralIsFatal(t *testing.T) {
	_, err := parseTestSource(t, `spillingTheTeaAbout demo pluh h(): int { yeet -'a' }`)
	if err == nil {
		t.Fatalf("expected a parse error for applying a unary operator to a char literal")
	}
}

func TestParseForStmt(t *testing.T) {
	src := `spillingTheTeaAbout demo pluh g(): int {
		ratioed (cookUp i: int = 0 | i < 10 | i = i + 1) {
			yeet i
		}
		yeet 0
	}`

	mod, err := parseTestSource(t, src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	forStmt, ok := mod.Funcs[0].Body.Statements[0].(*ForStmt)
	if !ok {
		t.Fatalf("expected a *ForStmt, got %T", mod.Funcs[0].Body.Statements[0])
	}

	if _, ok := forStmt.Init.(*DeclInitStmt); !ok {
		t.Fatalf("expected Init to be a *DeclInitStmt, got %T", forStmt.Init)
	}

	cond, ok := forStmt.Cond.(*BinaryExpr)
	if !ok || cond.Operator != "<" {
		t.Fatalf("expected Cond to be a '<' comparison, got %+v", forStmt.Cond)
	}

	step, ok := forStmt.Step.(*AssignStmt)
	if !ok || step.Name != "i" {
		t.Fatalf("expected Step to be an assignment to 'i', got %+v", forStmt.Step)
	}

	body, ok := forStmt.Body.(*CompoundStmt)
	if !ok || len(body.Statements) != 1 {
		t.Fatalf("expected Body to be a one-statement *CompoundStmt, got %+v", forStmt.Body)
	}
}

func TestParseCallAsStatement(t *testing.T) {
	src := `spillingTheTeaAbout demo
	plug puts(s: string): int
	pluh main(): int {
		puts("hi")
		yeet 0
	}`

	mod, err := parseTestSource(t, src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}

	main := mod.Funcs[1]
	assign, ok := main.Body.Statements[0].(*AssignStmt)
	if !ok {
		t.Fatalf("expected call-as-statement to parse as an *AssignStmt, got %T", main.Body.Statements[0])
	}

	if assign.Name != SinkName {
		t.Fatalf("expected the sink name %q, got %q", SinkName, assign.Name)
	}

	call, ok := assign.Value.(*CallExpr)
	if !ok || call.Callee != "puts" {
		t.Fatalf("expected a call to 'puts', got %+v", assign.Value)
	}
}
