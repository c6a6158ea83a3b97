package codegen

import (
	"fmt"

	"github.com/sagarpatel/slanguage/feedback"
	"github.com/sagarpatel/slanguage/frontend"
	"github.com/sagarpatel/slanguage/source"
	"tinygo.org/x/go-llvm"
)

// Local is a function-scoped binding from a surface variable name to its
// stack slot and the surface type name that slot was allocated for
type Local struct {
	Alloca   llvm.Value
	TypeName string
}

// CodeGen owns the IR context, builder, and module for a single
// compilation, plus the per-function scope map and the loop fixpoints
// described in §4.3 and §5: the current loop's continue target (its
// condition block, or a "ratioed" loop's step block) and its merge block,
// nil outside any loop
type CodeGen struct {
	File    *source.File
	Context llvm.Context
	Module  llvm.Module
	Builder llvm.Builder

	scope map[string]*Local
	funcs map[string]*frontend.Prototype

	currentFunc llvm.Value
	loopCond    llvm.BasicBlock
	loopMerge   llvm.BasicBlock

	stringCounter int
}

// New constructs a CodeGen that will emit into a freshly created module
// named moduleName
func New(moduleName string, file *source.File) *CodeGen {
	ctx := llvm.NewContext()

	return &CodeGen{
		File:    file,
		Context: ctx,
		Module:  ctx.NewModule(moduleName),
		Builder: ctx.NewBuilder(),
		funcs:   make(map[string]*frontend.Prototype),
	}
}

// Generate lowers mod into the owned IR module and returns its textual
// serialization. Function signatures are declared in a first pass so that
// calls may reference functions declared later in source order, then
// bodies are emitted in a second pass
func (cg *CodeGen) Generate(mod *frontend.Module) (string, feedback.Message) {
	for _, decl := range mod.Funcs {
		if msg := cg.declareFunction(decl); msg != nil {
			return "", msg
		}
	}

	for _, decl := range mod.Funcs {
		if decl.IsExtern() {
			continue
		}

		if msg := cg.emitFunctionBody(decl); msg != nil {
			return "", msg
		}
	}

	return cg.Module.String(), nil
}

func (cg *CodeGen) mapType(name string, pos source.Pos) (llvm.Type, feedback.Message) {
	switch name {
	case "int":
		return cg.Context.Int32Type(), nil
	case "float":
		return cg.Context.DoubleType(), nil
	case "bool":
		return cg.Context.Int1Type(), nil
	case "char":
		return cg.Context.Int8Type(), nil
	case "string":
		return llvm.PointerType(cg.Context.Int8Type(), 0), nil
	case frontend.VoidTypeName:
		return cg.Context.VoidType(), nil
	}

	return llvm.Type{}, cg.errorf(pos, "unknown type name '%s'", name)
}

// declareFunction registers prototype's signature with the IR module and
// the funcs table used for call resolution, but emits no body
func (cg *CodeGen) declareFunction(decl *frontend.FunctionDecl) feedback.Message {
	proto := decl.Proto

	if _, exists := cg.funcs[proto.Name]; exists {
		return cg.errorf(proto.At, "function '%s' is already declared", proto.Name)
	}

	paramTypes := make([]llvm.Type, len(proto.Params))
	for i, param := range proto.Params {
		t, msg := cg.mapType(param.Type, proto.At)
		if msg != nil {
			return msg
		}
		paramTypes[i] = t
	}

	retType, msg := cg.mapType(proto.ReturnType, proto.At)
	if msg != nil {
		return msg
	}

	fnType := llvm.FunctionType(retType, paramTypes, false)
	llvm.AddFunction(cg.Module, proto.Name, fnType)
	cg.funcs[proto.Name] = proto

	return nil
}

// emitFunctionBody emits the entry block, the parameter-slot prologue, and
// the function's compound body. An implicit void return is appended if the
// body does not already terminate every path and the return type is void
func (cg *CodeGen) emitFunctionBody(decl *frontend.FunctionDecl) feedback.Message {
	proto := decl.Proto
	fn := cg.Module.NamedFunction(proto.Name)

	cg.currentFunc = fn
	cg.scope = make(map[string]*Local)
	cg.loopCond = llvm.BasicBlock{}
	cg.loopMerge = llvm.BasicBlock{}

	entry := cg.Context.AddBasicBlock(fn, "entry")
	cg.Builder.SetInsertPointAtEnd(entry)

	for i, param := range proto.Params {
		paramType, msg := cg.mapType(param.Type, proto.At)
		if msg != nil {
			return msg
		}

		alloca := cg.createEntryAlloca(paramType, param.Name)
		cg.Builder.CreateStore(fn.Param(i), alloca)
		cg.scope[param.Name] = &Local{Alloca: alloca, TypeName: param.Type}
	}

	terminated, msg := cg.emitCompound(decl.Body)
	if msg != nil {
		return msg
	}

	if !terminated {
		if proto.ReturnType == frontend.VoidTypeName {
			cg.Builder.CreateRetVoid()
		} else {
			return cg.errorf(decl.Body.At, "function '%s' is missing a return on some path", proto.Name)
		}
	}

	return nil
}

// createEntryAlloca places a stack slot at the top of the function's entry
// block regardless of where the builder is currently positioned, matching
// LLVM's convention that allocas belong at function entry
func (cg *CodeGen) createEntryAlloca(ty llvm.Type, name string) llvm.Value {
	saved := cg.Builder.GetInsertBlock()
	entry := cg.currentFunc.EntryBasicBlock()

	if first := entry.FirstInstruction(); first.IsNil() {
		cg.Builder.SetInsertPointAtEnd(entry)
	} else {
		cg.Builder.SetInsertPointBefore(first)
	}

	alloca := cg.Builder.CreateAlloca(ty, name)
	cg.Builder.SetInsertPointAtEnd(saved)

	return alloca
}

func (cg *CodeGen) errorf(pos source.Pos, format string, args ...interface{}) feedback.Message {
	return cg.errorfWithWhy(pos, nil, format, args...)
}

// errorfWithWhy is errorf plus a set of secondary selections cited as
// supporting context for the primary diagnostic (e.g. the declarations of
// both operands in a mixed-type arithmetic error)
func (cg *CodeGen) errorfWithWhy(pos source.Pos, why []feedback.Selection, format string, args ...interface{}) feedback.Message {
	return feedback.Error{
		Classification: feedback.CodegenError,
		File:           cg.File,
		What: feedback.Selection{
			Description: fmt.Sprintf(format, args...),
			Span:        source.Span{Start: pos, End: pos},
		},
		Why: why,
	}
}
