package codegen

import (
	"strings"
	"testing"

	"github.com/sagarpatel/slanguage/frontend"
	"github.com/sagarpatel/slanguage/source"
)

func generateTestSource(t *testing.T, contents string) (string, error) {
	t.Helper()

	file := source.NewFile("test.slang", contents)

	p := frontend.NewParser(file)
	mod, msg := p.Parse()
	if msg != nil {
		return "", errString(msg.Make(false))
	}

	cg := New(mod.Name, file)
	ir, msg := cg.Generate(mod)
	if msg != nil {
		return "", errString(msg.Make(false))
	}

	return ir, nil
}

type errString string

func (e errString) Error() string { return string(e) }

func TestGenerateReturnConstant(t *testing.T) {
	ir, err := generateTestSource(t, `spillingTheTeaAbout demo pluh main(): int { yeet 42 }`)
	if err != nil {
		t.Fatalf("unexpected codegen error: %s", err)
	}

	if !strings.Contains(ir, "@main") {
		t.Fatalf("expected IR to define @main, got:\n%s", ir)
	}

	if !strings.Contains(ir, "ret i32 42") {
		t.Fatalf("expected IR to return the constant 42, got:\n%s", ir)
	}
}

func TestGenerateArithmeticOrdersMulBeforeAdd(t *testing.T) {
	ir, err := generateTestSource(t, `spillingTheTeaAbout demo pluh f(a: int, b: int): int { yeet a + b * 2 }`)
	if err != nil {
		t.Fatalf("unexpected codegen error: %s", err)
	}

	mulIdx := strings.Index(ir, "mul")
	addIdx := strings.Index(ir, "add")

	if mulIdx == -1 || addIdx == -1 {
		t.Fatalf("expected both a mul and an add instruction, got:\n%s", ir)
	}

	if mulIdx > addIdx {
		t.Fatalf("expected the mul instruction to appear before the add instruction")
	}
}

func TestGenerateWhileWithBreak(t *testing.T) {
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

	ir, err := generateTestSource(t, src)
	if err != nil {
		t.Fatalf("unexpected codegen error: %s", err)
	}

	if !strings.Contains(ir, "br i1") {
		t.Fatalf("expected at least one conditional branch, got:\n%s", ir)
	}
}

func TestGenerateExternAndCall(t *testing.T) {
	src := `spillingTheTeaAbout demo
	plug puts(s: string): int
	pluh main(): int {
		puts("hi")
		yeet 0
	}`

	ir, err := generateTestSource(t, src)
	if err != nil {
		t.Fatalf("unexpected codegen error: %s", err)
	}

	if !strings.Contains(ir, "declare i32 @puts") {
		t.Fatalf("expected an external declaration of @puts, got:\n%s", ir)
	}

	if !strings.Contains(ir, "call i32 @puts") {
		t.Fatalf("expected a call instruction targeting @puts, got:\n%s", ir)
	}
}

func TestGenerateUnknownIdentifierIsFatal(t *testing.T) {
	_, err := generateTestSource(t, `spillingTheTeaAbout demo pluh h(): int { yeet missing }`)
	if err == nil {
		t.Fatalf("expected a codegen error naming the missing symbol")
	}
}

func TestGenerateMixedTypeArithmeticIsFatal(t *testing.T) {
	src := `spillingTheTeaAbout demo pluh h(): int {
		cookUp a: int = 1
		cookUp b: float = 2.0
		yeet a + b
	}`

	_, err := generateTestSource(t, src)
	if err == nil {
		t.Fatalf("expected a codegen error for mixed-type arithmetic")
	}
}

func TestGenerateBreakOutsideLoopIsFatal(t *testing.T) {
	_, err := generateTestSource(t, `spillingTheTeaAbout demo pluh h(): int { ghost yeet 0 }`)
	if err == nil {
		t.Fatalf("expected a codegen error for a break outside of a loop")
	}
}

func TestGenerateArityMismatchIsFatal(t *testing.T) {
	src := `spillingTheTeaAbout demo
	plug puts(s: string): int
	pluh main(): int {
		puts("hi", "there")
		yeet 0
	}`

	_, err := generateTestSource(t, src)
	if err == nil {
		t.Fatalf("expected a codegen error for an arity mismatch")
	}
}

func TestGenerateEmptyModuleHasNoFunctions(t *testing.T) {
	ir, err := generateTestSource(t, `spillingTheTeaAbout empty`)
	if err != nil {
		t.Fatalf("unexpected codegen error: %s", err)
	}

	if strings.Contains(ir, "define ") {
		t.Fatalf("expected no function definitions in an empty module, got:\n%s", ir)
	}
}

// TestGenerateForContinueTargetsStepBlock locks in the reason the
// "ratioed" loop gets its own four-block lowering instead of reusing the
// while machinery: "rizz" must branch straight to the step block so the
// increment still runs, not to the condition block. The loop body here is
// exactly "rizz" with no other statement, so the body itself terminates on
// the continue and the lowering never appends a second, implicit branch to
// the step block at the body's end — leaving exactly one "br label
// %for.step" in the output, which can only have come from the continue.
func TestGenerateForContinueTargetsStepBlock(t *testing.T) {
	src := `spillingTheTeaAbout demo pluh g(): int {
		ratioed (cookUp i: int = 0 | i < 10 | i = i + 1) {
			rizz
		}
		yeet i
	}`

	ir, err := generateTestSource(t, src)
	if err != nil {
		t.Fatalf("unexpected codegen error: %s", err)
	}

	if !strings.Contains(ir, "for.step:") {
		t.Fatalf("expected a for.step block in the IR, got:\n%s", ir)
	}

	if got := strings.Count(ir, "br label %for.step"); got != 1 {
		t.Fatalf("expected exactly one branch to the step block (from 'rizz'), got %d in:\n%s", got, ir)
	}

	if strings.Count(ir, "br label %for.cond") == 0 {
		t.Fatalf("expected the step block to branch back to the condition block, got:\n%s", ir)
	}
}

func TestGenerateArrayLiteralIsUnsupported(t *testing.T) {
	src := `spillingTheTeaAbout demo pluh h(): int {
		gang xs: int = 1, 2, 3
		yeet 0
	}`

	_, err := generateTestSource(t, src)
	if err == nil {
		t.Fatalf("expected a codegen error rejecting array literals")
	}
}
