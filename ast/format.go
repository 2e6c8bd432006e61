package ast

import (
	"fmt"
	"strconv"
	"strings"

	"wabbit/util"
)

// Format renders an AST node back into Wabbit source text.
func Format(node ASTNode) string {
	f := &formatter{}

	switch v := node.(type) {
	case *Program:
		for _, stmt := range v.Stmts {
			f.stmt(stmt)
		}
	case *Block:
		f.sb.WriteString("{\n")
		f.block(v)
	case Stmt:
		f.stmt(v)
	case Expr:
		return f.expr(v)
	case *MatchArm:
		return f.arm(v)
	case *Param:
		return v.Name + " " + v.TypeName
	case *FieldDef:
		return v.Name + " " + v.TypeName
	case *VariantDef:
		if v.PayloadTypeName == "" {
			return v.Name
		}

		return v.Name + "(" + v.PayloadTypeName + ")"
	default:
		return fmt.Sprintf("<%T>", node)
	}

	return strings.TrimSuffix(f.sb.String(), "\n")
}

// formatter holds the output and indentation state while formatting.
type formatter struct {
	sb     strings.Builder
	indent int
}

// line writes a single indented line.
func (f *formatter) line(text string) {
	f.sb.WriteString(strings.Repeat("    ", f.indent))
	f.sb.WriteString(text)
	f.sb.WriteRune('\n')
}

// block writes the given block's statements followed by its closing brace.
// The opening brace is written by the caller on the current line.
func (f *formatter) block(b *Block) {
	f.indent++
	for _, stmt := range b.Stmts {
		f.stmt(stmt)
	}
	f.indent--
	f.line("}")
}

func (f *formatter) stmt(stmt Stmt) {
	switch v := stmt.(type) {
	case *Print:
		f.line("print " + f.expr(v.Value) + ";")
	case *Assign:
		f.line(f.expr(v.Target) + " = " + f.expr(v.Value) + ";")
	case *VarDecl:
		f.line(f.decl("var", v.Name, v.TypeName, v.Init))
	case *ConstDecl:
		f.line(f.decl("const", v.Name, v.TypeName, v.Init))
	case *If:
		f.line("if " + f.expr(v.Cond) + " {")
		f.block(v.Then)

		if v.Else != nil {
			f.unline()
			f.sb.WriteString(" else {\n")
			f.block(v.Else)
		}
	case *While:
		f.line("while " + f.expr(v.Cond) + " {")
		f.block(v.Body)
	case *Break:
		f.line("break;")
	case *Continue:
		f.line("continue;")
	case *Return:
		if v.Value == nil {
			f.line("return;")
		} else {
			f.line("return " + f.expr(v.Value) + ";")
		}
	case *ExprStmt:
		f.line(f.expr(v.Expr) + ";")
	case *FuncDef:
		params := util.Map(v.Params, func(p *Param) string {
			return p.Name + " " + p.TypeName
		})

		header := "func " + v.Name + "(" + strings.Join(params, ", ") + ")"
		if v.ReturnTypeName != "" {
			header += " " + v.ReturnTypeName
		}

		f.line(header + " {")
		f.block(v.Body)
	case *StructDef:
		f.line("struct " + v.Name + " {")
		f.indent++
		for _, field := range v.Fields {
			f.line(field.Name + " " + field.TypeName + ";")
		}
		f.indent--
		f.line("}")
	case *EnumDef:
		f.line("enum " + v.Name + " {")
		f.indent++
		for _, variant := range v.Variants {
			if variant.PayloadTypeName == "" {
				f.line(variant.Name + ";")
			} else {
				f.line(variant.Name + "(" + variant.PayloadTypeName + ");")
			}
		}
		f.indent--
		f.line("}")
	default:
		f.line(fmt.Sprintf("<%T>", stmt))
	}
}

// unline removes the trailing newline so the next write continues the
// previous line.
func (f *formatter) unline() {
	s := strings.TrimSuffix(f.sb.String(), "\n")
	f.sb.Reset()
	f.sb.WriteString(s)
}

func (f *formatter) decl(kw, name, typeName string, init Expr) string {
	text := kw + " " + name
	if typeName != "" {
		text += " " + typeName
	}

	if init != nil {
		text += " = " + f.expr(init)
	}

	return text + ";"
}

// -----------------------------------------------------------------------------

// precedence returns the binding strength of a binary operator.
func precedence(op string) int {
	switch op {
	case "||":
		return 1
	case "&&":
		return 2
	case "<", "<=", ">", ">=", "==", "!=":
		return 3
	case "+", "-":
		return 4
	default:
		return 5
	}
}

// unaryPrecedence is the binding strength of all unary operators.
const unaryPrecedence = 6

// exprPrec returns the binding strength of an expression as it is written.
func exprPrec(expr Expr) int {
	switch v := expr.(type) {
	case *BinaryOp:
		return precedence(v.Op)
	case *UnaryOp:
		return unaryPrecedence
	default:
		return unaryPrecedence + 1
	}
}

// operand formats expr, parenthesizing it if it binds looser than min.
func (f *formatter) operand(expr Expr, min int) string {
	text := f.expr(expr)
	if exprPrec(expr) < min {
		return "(" + text + ")"
	}

	return text
}

func (f *formatter) expr(expr Expr) string {
	switch v := expr.(type) {
	case *IntLit:
		return strconv.FormatInt(v.Value, 10)
	case *FloatLit:
		return util.FormatFloat(v.Value)
	case *CharLit:
		return formatChar(v.Value)
	case *BoolLit:
		return strconv.FormatBool(v.Value)
	case *UnitLit:
		return "()"
	case *Name:
		return v.Name
	case *UnaryOp:
		return v.Op + f.operand(v.Operand, unaryPrecedence)
	case *BinaryOp:
		prec := precedence(v.Op)
		return f.operand(v.Lhs, prec) + " " + v.Op + " " + f.operand(v.Rhs, prec+1)
	case *Call:
		return v.Func + "(" + f.exprList(v.Args) + ")"
	case *FieldAccess:
		return f.operand(v.Operand, unaryPrecedence+1) + "." + v.Field
	case *StructLit:
		return v.Struct + "(" + f.exprList(v.Args) + ")"
	case *EnumValue:
		if v.Payload == nil {
			return v.Enum + "::" + v.Variant
		}

		return v.Enum + "::" + v.Variant + "(" + f.expr(v.Payload) + ")"
	case *Match:
		sb := strings.Builder{}
		sb.WriteString("match " + f.expr(v.Scrutinee) + " {\n")

		f.indent++
		for _, arm := range v.Arms {
			sb.WriteString(strings.Repeat("    ", f.indent))
			sb.WriteString(f.arm(arm))
			sb.WriteString(";\n")
		}
		f.indent--

		sb.WriteString(strings.Repeat("    ", f.indent))
		sb.WriteRune('}')
		return sb.String()
	case *Compound:
		inner := &formatter{}
		for _, stmt := range v.Stmts {
			inner.stmt(stmt)
		}

		lines := strings.Split(strings.TrimSuffix(inner.sb.String(), "\n"), "\n")
		return "{ " + strings.Join(util.Map(lines, strings.TrimSpace), " ") + " }"
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}

func (f *formatter) arm(arm *MatchArm) string {
	pattern := arm.Variant
	if arm.Binding != "" {
		pattern += "(" + arm.Binding + ")"
	}

	return pattern + " => " + f.expr(arm.Body)
}

func (f *formatter) exprList(exprs []Expr) string {
	return strings.Join(util.Map(exprs, f.expr), ", ")
}

// formatChar renders a character literal with its escapes.
func formatChar(c byte) string {
	switch c {
	case '\n':
		return `'\n'`
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	default:
		if c < ' ' || c > '~' {
			return fmt.Sprintf(`'\x%02x'`, c)
		}

		return "'" + string(rune(c)) + "'"
	}
}
