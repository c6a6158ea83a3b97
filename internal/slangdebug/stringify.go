// Package slangdebug renders a parsed AST as an indented S-expression for
// the compiler driver's "-v" debug output. It is not part of the compiler
// pipeline proper; nothing downstream depends on its output format.
package slangdebug

import (
	"fmt"
	"strings"

	"github.com/sagarpatel/slanguage/frontend"
)

// StringifyModule renders mod's entire function list
func StringifyModule(mod *frontend.Module) string {
	block := ""

	for i, fn := range mod.Funcs {
		block += stringifyFunc(fn)

		if i+1 < len(mod.Funcs) {
			block += "\n"
		}
	}

	return fmt.Sprintf("(module %s (\n%s\n))", mod.Name, indentString(block))
}

func stringifyFunc(fn *frontend.FunctionDecl) string {
	proto := stringifyProto(fn.Proto)

	if fn.IsExtern() {
		return fmt.Sprintf("(extern %s)", proto)
	}

	return fmt.Sprintf("(def %s %s)", proto, stringifyStmt(fn.Body))
}

func stringifyProto(proto *frontend.Prototype) string {
	params := make([]string, len(proto.Params))
	for i, p := range proto.Params {
		params[i] = fmt.Sprintf("%s:%s", p.Name, p.Type)
	}

	return fmt.Sprintf("%s(%s):%s", proto.Name, strings.Join(params, ", "), proto.ReturnType)
}

func stringifyStmt(generic frontend.Stmt) string {
	switch node := generic.(type) {
	case *frontend.CompoundStmt:
		body := ""
		for i, stmt := range node.Statements {
			body += stringifyStmt(stmt)
			if i+1 < len(node.Statements) {
				body += "\n"
			}
		}
		return fmt.Sprintf("(\n%s\n)", indentString(body))

	case *frontend.DeclStmt:
		return fmt.Sprintf("(decl %s:%s)", node.Name, node.Type)

	case *frontend.DeclInitStmt:
		return fmt.Sprintf("(decl %s:%s %s)", node.Name, node.Type, stringifyExpr(node.Init))

	case *frontend.AssignStmt:
		return fmt.Sprintf("(set %s %s)", node.Name, stringifyExpr(node.Value))

	case *frontend.IfStmt:
		if node.Else == nil {
			return fmt.Sprintf("(if %s %s)", stringifyExpr(node.Cond), stringifyStmt(node.Then))
		}
		return fmt.Sprintf("(if %s %s %s)", stringifyExpr(node.Cond), stringifyStmt(node.Then), stringifyStmt(node.Else))

	case *frontend.WhileStmt:
		return fmt.Sprintf("(while %s %s)", stringifyExpr(node.Cond), stringifyStmt(node.Body))

	case *frontend.ForStmt:
		return fmt.Sprintf("(for %s %s %s %s)",
			stringifyStmt(node.Init), stringifyExpr(node.Cond), stringifyStmt(node.Step), stringifyStmt(node.Body))

	case *frontend.BreakStmt:
		return "(break)"

	case *frontend.ContinueStmt:
		return "(continue)"

	case *frontend.ReturnStmt:
		return fmt.Sprintf("(return %s)", stringifyExpr(node.Value))

	case *frontend.ArrayLiteralStmt:
		vals := make([]string, len(node.Values))
		for i, v := range node.Values {
			vals[i] = stringifyExpr(v)
		}
		return fmt.Sprintf("(array %s:%s %s)", node.Name, node.Type, strings.Join(vals, " "))

	case *frontend.CallExpr:
		return stringifyExpr(node)
	}

	return "(?)"
}

func stringifyExpr(generic frontend.Expr) string {
	switch node := generic.(type) {
	case *frontend.IntegerExpr:
		return node.Lexeme
	case *frontend.FloatExpr:
		return node.Lexeme
	case *frontend.BoolExpr:
		return fmt.Sprintf("%v", node.Value)
	case *frontend.CharExpr:
		return fmt.Sprintf("'%c'", node.Value)
	case *frontend.StringExpr:
		return fmt.Sprintf("%q", node.Value)
	case *frontend.VarExpr:
		return node.Name
	case *frontend.UnaryExpr:
		return fmt.Sprintf("(%s %s)", node.Operator, stringifyExpr(node.Operand))
	case *frontend.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", node.Operator, stringifyExpr(node.Left), stringifyExpr(node.Right))
	case *frontend.CallExpr:
		args := make([]string, len(node.Args))
		for i, a := range node.Args {
			args[i] = stringifyExpr(a)
		}
		return fmt.Sprintf("(call %s %s)", node.Callee, strings.Join(args, " "))
	}

	return "(?)"
}

func indentString(s string) string {
	lines := strings.Split(s, "\n")

	for i, l := range lines {
		lines[i] = "   " + l
	}

	return strings.Join(lines, "\n")
}
