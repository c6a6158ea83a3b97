package codegen

import (
	"fmt"

	"github.com/sagarpatel/slanguage/feedback"
	"github.com/sagarpatel/slanguage/frontend"
	"github.com/sagarpatel/slanguage/source"
	"tinygo.org/x/go-llvm"
)

var intPredicates = map[string]llvm.IntPredicate{
	"<": llvm.IntSLT, "<=": llvm.IntSLE,
	">": llvm.IntSGT, ">=": llvm.IntSGE,
	"==": llvm.IntEQ, "!=": llvm.IntNE,
}

var floatPredicates = map[string]llvm.FloatPredicate{
	"<": llvm.FloatOLT, "<=": llvm.FloatOLE,
	">": llvm.FloatOGT, ">=": llvm.FloatOGE,
	"==": llvm.FloatOEQ, "!=": llvm.FloatONE,
}

// emitExpr lowers expr to an IR value and reports the surface type name
// that value was computed under, which the caller needs to dispatch
// further arithmetic or to pick a load type
func (cg *CodeGen) emitExpr(expr frontend.Expr) (llvm.Value, string, feedback.Message) {
	switch n := expr.(type) {
	case *frontend.IntegerExpr:
		return llvm.ConstInt(cg.Context.Int32Type(), uint64(n.Value), false), "int", nil

	case *frontend.FloatExpr:
		return llvm.ConstFloat(cg.Context.DoubleType(), n.Value), "float", nil

	case *frontend.BoolExpr:
		var v uint64
		if n.Value {
			v = 1
		}
		return llvm.ConstInt(cg.Context.Int1Type(), v, false), "bool", nil

	case *frontend.CharExpr:
		return llvm.ConstInt(cg.Context.Int8Type(), uint64(n.Value), false), "char", nil

	case *frontend.StringExpr:
		return cg.emitStringLiteral(n.Value), "string", nil

	case *frontend.VarExpr:
		return cg.emitVarExpr(n)

	case *frontend.UnaryExpr:
		return cg.emitUnaryExpr(n)

	case *frontend.BinaryExpr:
		return cg.emitBinaryExpr(n)

	case *frontend.CallExpr:
		return cg.emitCallExpr(n)
	}

	return llvm.Value{}, "", cg.errorf(expr.Pos(), "cannot emit expression of unknown kind")
}

// emitStringLiteral creates a private, zero-terminated constant global and
// returns a pointer to its first byte
func (cg *CodeGen) emitStringLiteral(value string) llvm.Value {
	name := fmt.Sprintf(".str.%d", cg.stringCounter)
	cg.stringCounter++

	bytes := llvm.ConstString(value, true)
	arrType := llvm.ArrayType(cg.Context.Int8Type(), len(value)+1)

	global := llvm.AddGlobal(cg.Module, arrType, name)
	global.SetInitializer(bytes)
	global.SetLinkage(llvm.PrivateLinkage)
	global.SetGlobalConstant(true)

	zero := llvm.ConstInt(cg.Context.Int32Type(), 0, false)
	return cg.Builder.CreateGEP(arrType, global, []llvm.Value{zero, zero}, "")
}

func (cg *CodeGen) emitVarExpr(n *frontend.VarExpr) (llvm.Value, string, feedback.Message) {
	local, ok := cg.scope[n.Name]
	if !ok {
		return llvm.Value{}, "", cg.errorf(n.At, "unknown identifier '%s'", n.Name)
	}

	ty, msg := cg.mapType(local.TypeName, n.At)
	if msg != nil {
		return llvm.Value{}, "", msg
	}

	return cg.Builder.CreateLoad(ty, local.Alloca, n.Name), local.TypeName, nil
}

// emitUnaryExpr lowers '+' (identity), '-' (integer/float negation), and
// '!' (i1 negation) per §4.3
func (cg *CodeGen) emitUnaryExpr(n *frontend.UnaryExpr) (llvm.Value, string, feedback.Message) {
	val, typeName, msg := cg.emitExpr(n.Operand)
	if msg != nil {
		return llvm.Value{}, "", msg
	}

	switch n.Operator {
	case "+":
		return val, typeName, nil

	case "-":
		switch typeName {
		case "int":
			return cg.Builder.CreateNeg(val, ""), "int", nil
		case "float":
			return cg.Builder.CreateFNeg(val, ""), "float", nil
		}
		return llvm.Value{}, "", cg.errorf(n.At, "cannot apply unary '-' to a value of type '%s'", typeName)

	case "!":
		if typeName != "bool" {
			return llvm.Value{}, "", cg.errorf(n.At, "cannot apply unary '!' to a value of type '%s'", typeName)
		}
		return cg.Builder.CreateNot(val, ""), "bool", nil
	}

	return llvm.Value{}, "", cg.errorf(n.At, "unknown unary operator '%s'", n.Operator)
}

// emitBinaryExpr dispatches arithmetic and comparison operators on the
// shared operand type; mixed-type operands are rejected explicitly per §9
func (cg *CodeGen) emitBinaryExpr(n *frontend.BinaryExpr) (llvm.Value, string, feedback.Message) {
	left, leftType, msg := cg.emitExpr(n.Left)
	if msg != nil {
		return llvm.Value{}, "", msg
	}

	right, rightType, msg := cg.emitExpr(n.Right)
	if msg != nil {
		return llvm.Value{}, "", msg
	}

	if leftType != rightType {
		why := []feedback.Selection{
			{Description: fmt.Sprintf("this operand has type '%s'", leftType), Span: source.Span{Start: n.Left.Pos(), End: n.Left.Pos()}},
			{Description: fmt.Sprintf("this operand has type '%s'", rightType), Span: source.Span{Start: n.Right.Pos(), End: n.Right.Pos()}},
		}
		return llvm.Value{}, "", cg.errorfWithWhy(n.Pos(), why, "mixed-type arithmetic between '%s' and '%s' is not supported", leftType, rightType)
	}

	if pred, ok := intPredicates[n.Operator]; ok {
		if leftType == "float" {
			return cg.Builder.CreateFCmp(floatPredicates[n.Operator], left, right, ""), "bool", nil
		}
		return cg.Builder.CreateICmp(pred, left, right, ""), "bool", nil
	}

	switch leftType {
	case "int":
		switch n.Operator {
		case "+":
			return cg.Builder.CreateAdd(left, right, ""), "int", nil
		case "-":
			return cg.Builder.CreateSub(left, right, ""), "int", nil
		case "*":
			return cg.Builder.CreateMul(left, right, ""), "int", nil
		case "/":
			return cg.Builder.CreateSDiv(left, right, ""), "int", nil
		case "%":
			return cg.Builder.CreateSRem(left, right, ""), "int", nil
		}

	case "float":
		switch n.Operator {
		case "+":
			return cg.Builder.CreateFAdd(left, right, ""), "float", nil
		case "-":
			return cg.Builder.CreateFSub(left, right, ""), "float", nil
		case "*":
			return cg.Builder.CreateFMul(left, right, ""), "float", nil
		case "/":
			return cg.Builder.CreateFDiv(left, right, ""), "float", nil
		case "%":
			return cg.Builder.CreateFRem(left, right, ""), "float", nil
		}
	}

	return llvm.Value{}, "", cg.errorf(n.Pos(), "operator '%s' is not supported on type '%s'", n.Operator, leftType)
}

// emitCallExpr looks up the callee's prototype, checks arity, evaluates
// arguments left-to-right, and emits a call instruction
func (cg *CodeGen) emitCallExpr(n *frontend.CallExpr) (llvm.Value, string, feedback.Message) {
	proto, ok := cg.funcs[n.Callee]
	if !ok {
		return llvm.Value{}, "", cg.errorf(n.At, "unknown identifier '%s'", n.Callee)
	}

	if len(n.Args) != len(proto.Params) {
		return llvm.Value{}, "", cg.errorf(n.At, "call to '%s' expects %d argument(s), found %d", n.Callee, len(proto.Params), len(n.Args))
	}

	args := make([]llvm.Value, len(n.Args))
	paramTypes := make([]llvm.Type, len(proto.Params))

	for i, argExpr := range n.Args {
		val, _, msg := cg.emitExpr(argExpr)
		if msg != nil {
			return llvm.Value{}, "", msg
		}
		args[i] = val

		pt, msg := cg.mapType(proto.Params[i].Type, proto.At)
		if msg != nil {
			return llvm.Value{}, "", msg
		}
		paramTypes[i] = pt
	}

	retType, msg := cg.mapType(proto.ReturnType, proto.At)
	if msg != nil {
		return llvm.Value{}, "", msg
	}

	fnType := llvm.FunctionType(retType, paramTypes, false)
	fn := cg.Module.NamedFunction(n.Callee)

	name := ""
	if proto.ReturnType != frontend.VoidTypeName {
		name = n.Callee + ".call"
	}

	return cg.Builder.CreateCall(fnType, fn, args, name), proto.ReturnType, nil
}
