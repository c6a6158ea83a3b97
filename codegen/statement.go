package codegen

import (
	"github.com/sagarpatel/slanguage/feedback"
	"github.com/sagarpatel/slanguage/frontend"
)

// emitCompound emits each inner statement in order, stopping early if a
// statement terminates the current block (return/break/continue) so that
// no instructions are appended after a terminator. The returned bool
// reports whether the compound's last emitted statement terminated its
// block
func (cg *CodeGen) emitCompound(body *frontend.CompoundStmt) (terminated bool, msg feedback.Message) {
	for _, stmt := range body.Statements {
		if terminated {
			break
		}

		terminated, msg = cg.emitStmt(stmt)
		if msg != nil {
			return false, msg
		}
	}

	return terminated, nil
}

// emitStmt dispatches on the statement's concrete type and returns whether
// it left the current block terminated
func (cg *CodeGen) emitStmt(stmt frontend.Stmt) (bool, feedback.Message) {
	switch n := stmt.(type) {
	case *frontend.DeclStmt:
		return cg.emitDeclStmt(n)
	case *frontend.DeclInitStmt:
		return cg.emitDeclInitStmt(n)
	case *frontend.AssignStmt:
		return cg.emitAssignStmt(n)
	case *frontend.IfStmt:
		return cg.emitIfStmt(n)
	case *frontend.WhileStmt:
		return cg.emitWhileStmt(n)
	case *frontend.ForStmt:
		return cg.emitForStmt(n)
	case *frontend.BreakStmt:
		return cg.emitBreakStmt(n)
	case *frontend.ContinueStmt:
		return cg.emitContinueStmt(n)
	case *frontend.ReturnStmt:
		return cg.emitReturnStmt(n)
	case *frontend.CompoundStmt:
		return cg.emitCompound(n)
	case *frontend.ArrayLiteralStmt:
		return false, cg.errorf(n.At, "arrays are not supported at code generation")
	case *frontend.CallExpr:
		_, _, msg := cg.emitExpr(n)
		return false, msg
	}

	return false, cg.errorf(stmt.Pos(), "cannot emit statement of unknown kind")
}

func (cg *CodeGen) emitDeclStmt(n *frontend.DeclStmt) (bool, feedback.Message) {
	ty, msg := cg.mapType(n.Type, n.At)
	if msg != nil {
		return false, msg
	}

	alloca := cg.createEntryAlloca(ty, n.Name)
	cg.scope[n.Name] = &Local{Alloca: alloca, TypeName: n.Type}

	return false, nil
}

func (cg *CodeGen) emitDeclInitStmt(n *frontend.DeclInitStmt) (bool, feedback.Message) {
	ty, msg := cg.mapType(n.Type, n.At)
	if msg != nil {
		return false, msg
	}

	val, _, msg := cg.emitExpr(n.Init)
	if msg != nil {
		return false, msg
	}

	alloca := cg.createEntryAlloca(ty, n.Name)
	cg.Builder.CreateStore(val, alloca)
	cg.scope[n.Name] = &Local{Alloca: alloca, TypeName: n.Type}

	return false, nil
}

// emitAssignStmt evaluates the right-hand side and stores it into the named
// slot, or discards it if Name is the sink name (a call used as a
// statement)
func (cg *CodeGen) emitAssignStmt(n *frontend.AssignStmt) (bool, feedback.Message) {
	val, _, msg := cg.emitExpr(n.Value)
	if msg != nil {
		return false, msg
	}

	if n.Name == frontend.SinkName {
		return false, nil
	}

	local, ok := cg.scope[n.Name]
	if !ok {
		return false, cg.errorf(n.At, "unknown identifier '%s'", n.Name)
	}

	cg.Builder.CreateStore(val, local.Alloca)

	return false, nil
}

// emitIfStmt emits the then/else/merge triple of §4.3. The else branch is a
// generic Stmt and may itself be another *IfStmt, implementing the
// fr?/ong?/justLikeThat? chain as ordinary recursion
func (cg *CodeGen) emitIfStmt(n *frontend.IfStmt) (bool, feedback.Message) {
	cond, _, msg := cg.emitExpr(n.Cond)
	if msg != nil {
		return false, msg
	}

	thenBB := cg.Context.AddBasicBlock(cg.currentFunc, "then")
	elseBB := cg.Context.AddBasicBlock(cg.currentFunc, "else")
	mergeBB := cg.Context.AddBasicBlock(cg.currentFunc, "merge")

	cg.Builder.CreateCondBr(cond, thenBB, elseBB)

	cg.Builder.SetInsertPointAtEnd(thenBB)
	thenTerminated, msg := cg.emitStmt(n.Then)
	if msg != nil {
		return false, msg
	}
	if !thenTerminated {
		cg.Builder.CreateBr(mergeBB)
	}

	cg.Builder.SetInsertPointAtEnd(elseBB)
	elseTerminated := false
	if n.Else != nil {
		elseTerminated, msg = cg.emitStmt(n.Else)
		if msg != nil {
			return false, msg
		}
	}
	if !elseTerminated {
		cg.Builder.CreateBr(mergeBB)
	}

	cg.Builder.SetInsertPointAtEnd(mergeBB)

	if thenTerminated && elseTerminated {
		cg.Builder.CreateUnreachable()
		return true, nil
	}

	return false, nil
}

// emitWhileStmt emits the cond/body/merge triple of §4.3, saving and
// restoring the loop fixpoints around the body so nested loops target
// their own blocks
func (cg *CodeGen) emitWhileStmt(n *frontend.WhileStmt) (bool, feedback.Message) {
	condBB := cg.Context.AddBasicBlock(cg.currentFunc, "cond")
	bodyBB := cg.Context.AddBasicBlock(cg.currentFunc, "body")
	mergeBB := cg.Context.AddBasicBlock(cg.currentFunc, "merge")

	cg.Builder.CreateBr(condBB)

	cg.Builder.SetInsertPointAtEnd(condBB)
	cond, _, msg := cg.emitExpr(n.Cond)
	if msg != nil {
		return false, msg
	}
	cg.Builder.CreateCondBr(cond, bodyBB, mergeBB)

	cg.Builder.SetInsertPointAtEnd(bodyBB)
	savedCond, savedMerge := cg.loopCond, cg.loopMerge
	cg.loopCond, cg.loopMerge = condBB, mergeBB

	bodyTerminated, msg := cg.emitStmt(n.Body)

	cg.loopCond, cg.loopMerge = savedCond, savedMerge

	if msg != nil {
		return false, msg
	}

	if !bodyTerminated {
		cg.Builder.CreateBr(condBB)
	}

	cg.Builder.SetInsertPointAtEnd(mergeBB)

	return false, nil
}

// emitForStmt lowers the supplemental "ratioed" form as its own four-block
// loop: init runs once before the loop, then cond/body/step/merge, so that
// "rizz" (continue) jumps to the step block rather than skipping the
// increment
func (cg *CodeGen) emitForStmt(n *frontend.ForStmt) (bool, feedback.Message) {
	if n.Init != nil {
		if _, msg := cg.emitStmt(n.Init); msg != nil {
			return false, msg
		}
	}

	condBB := cg.Context.AddBasicBlock(cg.currentFunc, "for.cond")
	bodyBB := cg.Context.AddBasicBlock(cg.currentFunc, "for.body")
	stepBB := cg.Context.AddBasicBlock(cg.currentFunc, "for.step")
	mergeBB := cg.Context.AddBasicBlock(cg.currentFunc, "for.merge")

	cg.Builder.CreateBr(condBB)

	cg.Builder.SetInsertPointAtEnd(condBB)
	cond, _, msg := cg.emitExpr(n.Cond)
	if msg != nil {
		return false, msg
	}
	cg.Builder.CreateCondBr(cond, bodyBB, mergeBB)

	cg.Builder.SetInsertPointAtEnd(bodyBB)
	savedCond, savedMerge := cg.loopCond, cg.loopMerge
	cg.loopCond, cg.loopMerge = stepBB, mergeBB

	bodyTerminated, msg := cg.emitStmt(n.Body)

	cg.loopCond, cg.loopMerge = savedCond, savedMerge

	if msg != nil {
		return false, msg
	}

	if !bodyTerminated {
		cg.Builder.CreateBr(stepBB)
	}

	cg.Builder.SetInsertPointAtEnd(stepBB)
	if n.Step != nil {
		if _, msg := cg.emitStmt(n.Step); msg != nil {
			return false, msg
		}
	}
	cg.Builder.CreateBr(condBB)

	cg.Builder.SetInsertPointAtEnd(mergeBB)

	return false, nil
}

func (cg *CodeGen) emitBreakStmt(n *frontend.BreakStmt) (bool, feedback.Message) {
	if cg.loopMerge.IsNil() {
		return false, cg.errorf(n.At, "'ghost' used outside of a loop")
	}

	cg.Builder.CreateBr(cg.loopMerge)

	return true, nil
}

func (cg *CodeGen) emitContinueStmt(n *frontend.ContinueStmt) (bool, feedback.Message) {
	if cg.loopCond.IsNil() {
		return false, cg.errorf(n.At, "'rizz' used outside of a loop")
	}

	cg.Builder.CreateBr(cg.loopCond)

	return true, nil
}

func (cg *CodeGen) emitReturnStmt(n *frontend.ReturnStmt) (bool, feedback.Message) {
	val, _, msg := cg.emitExpr(n.Value)
	if msg != nil {
		return false, msg
	}

	cg.Builder.CreateRet(val)

	return true, nil
}
