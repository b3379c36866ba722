// Package astfmt renders an ast.Class as deterministic, indented text.
// It exists purely as a test and debugging aid — golden fixtures under
// testdata/ compare against its output — and is never used to drive any
// runtime behavior.
package astfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kristofer/som/pkg/ast"
)

// Format renders class as a single string. The shape is stable across
// runs: field and method lists print in the order the parser produced
// them, never resorted, so the output doubles as a record of source
// order.
func Format(class *ast.Class) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Class %s (super %s)\n", class.Name, class.SuperclassName)

	if len(class.InstanceFields) > 0 {
		fmt.Fprintf(&b, "  instance fields: %s\n", strings.Join(class.InstanceFields, ", "))
	}
	for _, m := range class.InstanceMethods {
		writeMethod(&b, m, 1)
	}

	if len(class.ClassFields) > 0 {
		fmt.Fprintf(&b, "  class fields: %s\n", strings.Join(class.ClassFields, ", "))
	}
	for _, m := range class.ClassMethods {
		writeMethod(&b, m, 1)
	}

	return b.String()
}

func writeMethod(b *strings.Builder, method ast.Method, depth int) {
	indent := strings.Repeat("  ", depth)
	switch m := method.(type) {
	case *ast.PrimitiveMethod:
		fmt.Fprintf(b, "%smethod %s primitive\n", indent, patternString(m.Pattern))
	case *ast.NativeMethod:
		fmt.Fprintf(b, "%smethod %s\n", indent, patternString(m.Pattern))
		if len(m.Locals) > 0 {
			fmt.Fprintf(b, "%s  locals: %s\n", indent, strings.Join(m.Locals, ", "))
		}
		for _, stmt := range m.Statements {
			writeExpression(b, stmt, depth+1)
		}
	}
}

func patternString(p ast.Pattern) string {
	if len(p.Arguments) == 0 {
		return p.Selector
	}
	if !strings.HasSuffix(p.Selector, ":") {
		return fmt.Sprintf("%s %s", p.Selector, p.Arguments[0])
	}

	parts := strings.Split(strings.TrimSuffix(p.Selector, ":"), ":")
	var pairs []string
	for i, part := range parts {
		pairs = append(pairs, fmt.Sprintf("%s: %s", part, p.Arguments[i]))
	}
	return strings.Join(pairs, " ")
}

func writeExpression(b *strings.Builder, expr ast.Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s\n", indent, inline(expr))
}

// inline renders an expression as a single line; a nested block's
// statements are rendered on that same line, separated by ". ".
func inline(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.LiteralNil:
		return "nil"
	case *ast.LiteralBoolean:
		return strconv.FormatBool(e.Value)
	case *ast.LiteralInteger:
		return strconv.FormatInt(e.Value, 10)
	case *ast.LiteralDouble:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ast.LiteralString:
		return fmt.Sprintf("%q", e.Value)
	case *ast.LiteralSymbol:
		return "#" + e.Value
	case *ast.Variable:
		return e.Name
	case *ast.Assignment:
		return fmt.Sprintf("(%s := %s)", strings.Join(e.Names, " := "), inline(e.Value))
	case *ast.UnaryMessage:
		return fmt.Sprintf("(%s %s)", inline(e.Receiver), e.Selector)
	case *ast.BinaryMessage:
		return fmt.Sprintf("(%s %s %s)", inline(e.Receiver), e.Operator, inline(e.Argument))
	case *ast.KeywordMessage:
		return fmt.Sprintf("(%s %s)", inline(e.Receiver), keywordCallString(e.Keywords, e.Arguments))
	case *ast.Block:
		return blockString(e)
	case *ast.Return:
		return "^" + inline(e.Value)
	default:
		return fmt.Sprintf("<unknown %T>", e)
	}
}

func keywordCallString(keywords []string, arguments []ast.Expression) string {
	var parts []string
	for i, kw := range keywords {
		parts = append(parts, fmt.Sprintf("%s %s", kw, inline(arguments[i])))
	}
	return strings.Join(parts, " ")
}

func blockString(b *ast.Block) string {
	var header strings.Builder
	header.WriteByte('[')
	if len(b.Parameters) > 0 {
		for _, p := range b.Parameters {
			fmt.Fprintf(&header, ":%s ", p)
		}
		header.WriteByte('|')
	}
	if len(b.Locals) > 0 {
		fmt.Fprintf(&header, " |%s|", strings.Join(b.Locals, " "))
	}

	var statements []string
	for _, stmt := range b.Statements {
		statements = append(statements, inline(stmt))
	}
	header.WriteString(strings.Join(statements, ". "))
	header.WriteByte(']')
	return header.String()
}
