// Package parser implements the recursive-descent parser that turns a
// token stream into a fully resolved ast.Class. Lookahead is provided
// by a small internal FIFO queue rather than backtracking: peek(n)
// pulls tokens from the lexer until the queue holds at least n of them,
// and consume(n) drops them from the front.
//
// Parsing stops at the first syntax error. There is no error recovery,
// no partial AST, and no more than one diagnostic per run.
package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kristofer/som/pkg/ast"
	"github.com/kristofer/som/pkg/lexer"
	"github.com/kristofer/som/pkg/token"
)

// binaryOperators is the closed set of single-character token symbols
// that double as binary message selectors.
var binaryOperators = []token.Symbol{
	token.And, token.At, token.Comma, token.Divide, token.Equal,
	token.Less, token.Minus, token.Modulus, token.More, token.Not,
	token.Or, token.Percent, token.Plus, token.Star,
}

func isBinaryOperator(s token.Symbol) bool {
	for _, b := range binaryOperators {
		if b == s {
			return true
		}
	}
	return false
}

var binarySymbolText = map[token.Symbol]string{
	token.And: "&", token.At: "@", token.Comma: ",", token.Divide: "/",
	token.Equal: "=", token.Less: "<", token.Minus: "-", token.Modulus: "\\",
	token.More: ">", token.Not: "~", token.Or: "|", token.Percent: "%",
	token.Plus: "+", token.Star: "*",
}

func binarySymbolToString(s token.Symbol) string {
	return binarySymbolText[s]
}

func startsMessage(s token.Symbol) bool {
	return s == token.Identifier || s == token.Keyword || s == token.OperatorSequence || isBinaryOperator(s)
}

// Parser turns a character stream into a Class. It owns the Lexer that
// produces its tokens; callers never see lexer.Item values directly.
type Parser struct {
	lexer    *lexer.Lexer
	queue    []lexer.Item
	filename string
}

// New creates a Parser reading SOM source from source. filename is used
// only to label diagnostics.
func New(source io.Reader, filename string) *Parser {
	return &Parser{lexer: lexer.New(source), filename: filename}
}

// fill pulls tokens from the lexer until the queue holds at least n,
// or returns the error that prevented it: ErrEndOfInput, or a
// *ParseError if the lexer hit a character it cannot classify.
func (p *Parser) fill(n int) error {
	for len(p.queue) < n {
		item, err := p.lexer.ReadToken()
		if err != nil {
			if illegal, ok := err.(*lexer.IllegalCharError); ok {
				return &ParseError{
					Description: fmt.Sprintf("Unexpected character %q", illegal.Char),
					Filename:    p.filename,
					Line:        illegal.Location.Line,
					Column:      illegal.Location.Column,
				}
			}
			return err
		}
		p.queue = append(p.queue, item)
	}
	return nil
}

func (p *Parser) peek(n int) (token.Token, error) {
	if err := p.fill(n); err != nil {
		return token.Token{}, err
	}
	return p.queue[n-1].Token, nil
}

func (p *Parser) peekLocation(n int) (token.Location, error) {
	if err := p.fill(n); err != nil {
		return token.Location{}, err
	}
	return p.queue[n-1].Location, nil
}

func (p *Parser) consume(n int) {
	for i := 0; i < n; i++ {
		if len(p.queue) == 0 {
			p.lexer.ReadToken()
			continue
		}
		p.queue = p.queue[1:]
	}
}

func (p *Parser) acceptOneOf(expected []token.Symbol) (token.Token, error) {
	tok, err := p.peek(1)
	if err != nil {
		return token.Token{}, err
	}

	for _, symbol := range expected {
		if tok.Is(symbol) {
			p.consume(1)
			return tok, nil
		}
	}

	loc, _ := p.peekLocation(1)
	return token.Token{}, &mismatchError{expected: expected, found: tok.Symbol, location: loc}
}

func (p *Parser) accept(expected token.Symbol) (token.Token, error) {
	return p.acceptOneOf([]token.Symbol{expected})
}

func (p *Parser) expectOneOf(expected []token.Symbol) (string, error) {
	tok, err := p.acceptOneOf(expected)
	if err != nil {
		return "", p.promoteMismatch(err)
	}
	return tok.Text, nil
}

func (p *Parser) expect(expected token.Symbol) (string, error) {
	return p.expectOneOf([]token.Symbol{expected})
}

// ParseClass parses a complete class definition: its name, optional
// superclass, instance fields and methods, and optional class-side
// fields and methods.
func (p *Parser) ParseClass() (*ast.Class, error) {
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal); err != nil {
		return nil, err
	}

	superclass, err := p.parseSuperclassName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NewTerm); err != nil {
		return nil, err
	}

	instanceFields, err := p.parseLocals()
	if err != nil {
		return nil, err
	}
	instanceMethods, err := p.parseMethods()
	if err != nil {
		return nil, err
	}

	var classFields []string
	var classMethods []ast.Method
	if _, err := p.accept(token.Separator); err == nil {
		classFields, err = p.parseLocals()
		if err != nil {
			return nil, err
		}
		classMethods, err = p.parseMethods()
		if err != nil {
			return nil, err
		}
	} else if !isMismatch(err) {
		return nil, err
	}

	if _, err := p.expect(token.EndTerm); err != nil {
		return nil, err
	}

	return &ast.Class{
		Name:            name,
		SuperclassName:  superclass,
		InstanceFields:  instanceFields,
		ClassFields:     classFields,
		InstanceMethods: instanceMethods,
		ClassMethods:    classMethods,
	}, nil
}

func (p *Parser) parseSuperclassName() (string, error) {
	tok, err := p.accept(token.Identifier)
	if err == nil {
		return tok.Text, nil
	}
	if isMismatch(err) {
		return "Object", nil
	}
	return "", err
}

func (p *Parser) parseMethods() ([]ast.Method, error) {
	var methods []ast.Method
	for {
		tok, err := p.peek(1)
		if err != nil {
			if err == ErrEndOfInput {
				break
			}
			return nil, err
		}
		if !startsMessage(tok.Symbol) {
			break
		}

		method, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	return methods, nil
}

// ParseMethod parses a single method definition: its pattern, then
// either the `primitive` marker or a native body in parentheses.
func (p *Parser) ParseMethod() (ast.Method, error) {
	return p.parseMethod()
}

func (p *Parser) parseMethod() (ast.Method, error) {
	pattern, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal); err != nil {
		return nil, err
	}

	if _, err := p.accept(token.Primitive); err == nil {
		return &ast.PrimitiveMethod{Pattern: pattern}, nil
	} else if !isMismatch(err) {
		return nil, err
	}

	if _, err := p.expect(token.NewTerm); err != nil {
		return nil, err
	}
	locals, err := p.parseLocals()
	if err != nil {
		return nil, err
	}
	statements, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EndTerm); err != nil {
		return nil, err
	}

	return &ast.NativeMethod{
		Pattern:    pattern,
		Locals:     locals,
		Statements: statements,
	}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok, err := p.peek(1)
	if err != nil {
		return ast.Pattern{}, err
	}

	switch {
	case tok.Is(token.Identifier):
		return p.parseUnaryPattern()
	case tok.Is(token.Keyword):
		return p.parseKeywordPattern()
	case tok.Is(token.OperatorSequence) || isBinaryOperator(tok.Symbol):
		return p.parseBinaryPattern()
	default:
		loc, _ := p.peekLocation(1)
		return ast.Pattern{}, &ParseError{
			Description: fmt.Sprintf("Expected method pattern, found %s", tok.Symbol),
			Filename:    p.filename,
			Line:        loc.Line,
			Column:      loc.Column,
		}
	}
}

func (p *Parser) parseUnaryPattern() (ast.Pattern, error) {
	name, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Pattern{}, err
	}
	return ast.Pattern{Selector: name}, nil
}

func (p *Parser) parseKeywordPattern() (ast.Pattern, error) {
	selector, err := p.expect(token.Keyword)
	if err != nil {
		return ast.Pattern{}, err
	}

	var arguments []string
	arg, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Pattern{}, err
	}
	arguments = append(arguments, arg)

	for {
		tok, err := p.accept(token.Keyword)
		if err != nil {
			if isMismatch(err) {
				break
			}
			return ast.Pattern{}, err
		}
		selector += tok.Text

		arg, err := p.expect(token.Identifier)
		if err != nil {
			return ast.Pattern{}, err
		}
		arguments = append(arguments, arg)
	}

	return ast.Pattern{Selector: selector, Arguments: arguments}, nil
}

func (p *Parser) parseBinaryPattern() (ast.Pattern, error) {
	tok, err := p.peek(1)
	if err != nil {
		return ast.Pattern{}, err
	}

	var selector string
	if tok.Is(token.OperatorSequence) {
		selector = tok.Text
	} else {
		selector = binarySymbolToString(tok.Symbol)
	}
	p.consume(1)

	parameter, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Pattern{}, err
	}

	return ast.Pattern{Selector: selector, Arguments: []string{parameter}}, nil
}

func (p *Parser) parseLocals() ([]string, error) {
	var locals []string
	if _, err := p.accept(token.Or); err == nil {
		for {
			tok, err := p.accept(token.Identifier)
			if err != nil {
				break
			}
			locals = append(locals, tok.Text)
		}
		if _, err := p.expect(token.Or); err != nil {
			return nil, err
		}
	}
	return locals, nil
}

func (p *Parser) parseBlockParameters() ([]string, error) {
	var parameters []string
	for {
		tok, err := p.peek(1)
		if err == nil && tok.Is(token.Colon) {
			if _, err := p.expect(token.Colon); err != nil {
				return nil, err
			}
			name, err := p.expect(token.Identifier)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, name)
			continue
		}

		if len(parameters) > 0 {
			if _, err := p.expect(token.Or); err != nil {
				return nil, err
			}
		}
		break
	}
	return parameters, nil
}

// ParseBlockBody parses a sequence of period-separated statements up to
// (but not including) the closing `)` or `]`.
func (p *Parser) ParseBlockBody() ([]ast.Expression, error) {
	return p.parseBlockBody()
}

func (p *Parser) parseBlockBody() ([]ast.Expression, error) {
	var statements []ast.Expression

	for {
		tok, err := p.peek(1)
		if err != nil {
			if err == ErrEndOfInput {
				break
			}
			return nil, err
		}

		switch tok.Symbol {
		case token.EndTerm, token.EndBlock:
			return statements, nil
		case token.Exit:
			stmt, err := p.parseResult()
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		default:
			stmt, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		}

		if _, err := p.accept(token.Period); err != nil {
			break
		}
	}

	return statements, nil
}

func (p *Parser) parseResult() (ast.Expression, error) {
	if _, err := p.expect(token.Exit); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}

func (p *Parser) parseAssignments() ([]string, error) {
	var names []string
	for {
		tok, err := p.peek(2)
		if err != nil || !tok.Is(token.Assign) {
			break
		}

		name, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Assign); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// ParseExpression parses a single expression: an assignment chain, or a
// primary expression followed by zero or more chained messages.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.parseExpression()
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	if tok, err := p.peek(2); err == nil && tok.Is(token.Assign) {
		names, err := p.parseAssignments()
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Names: names, Value: value}, nil
	}

	expr, err := p.parseExpressionPrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek(1)
		if err != nil || !startsMessage(tok.Symbol) {
			break
		}
		expr, err = p.parseExpressionMessages(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) parseExpressionPrimary() (ast.Expression, error) {
	tok, err := p.peek(1)
	if err != nil {
		return nil, err
	}

	switch tok.Symbol {
	case token.Identifier:
		return p.parseExpressionVariable()
	case token.String:
		return p.parseExpressionString()
	case token.Integer, token.Double:
		return p.parseExpressionNumber(false)
	case token.Pound:
		return p.parseExpressionSymbol()
	case token.Minus:
		return p.parseExpressionNegativeNumber()
	case token.NewBlock:
		return p.parseExpressionNestedBlock()
	case token.NewTerm:
		return p.parseExpressionNestedTerm()
	default:
		loc, _ := p.peekLocation(1)
		return nil, &ParseError{
			Description: fmt.Sprintf("Expected expression, found %s", tok.Symbol),
			Filename:    p.filename,
			Line:        loc.Line,
			Column:      loc.Column,
		}
	}
}

func (p *Parser) parseExpressionMessages(value ast.Expression) (ast.Expression, error) {
	tok, err := p.peek(1)
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Is(token.Identifier):
		expr := value
		for {
			tok, err := p.peek(1)
			if err != nil || !tok.Is(token.Identifier) {
				break
			}
			expr, err = p.parseExpressionUnaryMessage(expr)
			if err != nil {
				return nil, err
			}
		}
		return expr, nil
	case tok.Is(token.Keyword):
		return p.parseExpressionKeywordMessage(value)
	case tok.Is(token.OperatorSequence) || isBinaryOperator(tok.Symbol):
		return p.parseExpressionBinaryMessage(value)
	default:
		return value, nil
	}
}

func (p *Parser) parseExpressionNestedBlock() (ast.Expression, error) {
	if _, err := p.expect(token.NewBlock); err != nil {
		return nil, err
	}

	parameters, err := p.parseBlockParameters()
	if err != nil {
		return nil, err
	}
	locals, err := p.parseLocals()
	if err != nil {
		return nil, err
	}
	statements, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EndBlock); err != nil {
		return nil, err
	}

	return &ast.Block{Parameters: parameters, Locals: locals, Statements: statements}, nil
}

func (p *Parser) parseExpressionNestedTerm() (ast.Expression, error) {
	if _, err := p.expect(token.NewTerm); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EndTerm); err != nil {
		return nil, err
	}
	return value, nil
}

func (p *Parser) parseExpressionVariable() (ast.Expression, error) {
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}

	switch name {
	case "nil":
		return &ast.LiteralNil{}, nil
	case "true":
		return &ast.LiteralBoolean{Value: true}, nil
	case "false":
		return &ast.LiteralBoolean{Value: false}, nil
	default:
		return &ast.Variable{Name: name}, nil
	}
}

func (p *Parser) parseExpressionString() (ast.Expression, error) {
	text, err := p.expect(token.String)
	if err != nil {
		return nil, err
	}
	return &ast.LiteralString{Value: text}, nil
}

func (p *Parser) parseExpressionSymbol() (ast.Expression, error) {
	loc, _ := p.peekLocation(1)
	if _, err := p.expect(token.Pound); err != nil {
		return nil, err
	}

	tok, err := p.peek(1)
	if err != nil {
		return nil, err
	}

	var value string
	switch {
	case tok.Is(token.Identifier), tok.Is(token.String),
		tok.Is(token.Keyword), tok.Is(token.KeywordSequence),
		tok.Is(token.OperatorSequence):
		value = tok.Text
	case isBinaryOperator(tok.Symbol):
		value = binarySymbolToString(tok.Symbol)
	default:
		return nil, &ParseError{
			Description: fmt.Sprintf("Expected symbol, found %s", tok.Symbol),
			Filename:    p.filename,
			Line:        loc.Line,
			Column:      loc.Column,
		}
	}

	p.consume(1)
	return &ast.LiteralSymbol{Value: value}, nil
}

func (p *Parser) parseExpressionNegativeNumber() (ast.Expression, error) {
	loc, _ := p.peekLocation(1)
	if _, err := p.expect(token.Minus); err != nil {
		return nil, err
	}
	return p.parseExpressionNumberAt(true, loc)
}

func (p *Parser) parseExpressionNumber(negative bool) (ast.Expression, error) {
	loc, _ := p.peekLocation(1)
	return p.parseExpressionNumberAt(negative, loc)
}

func (p *Parser) parseExpressionNumberAt(negative bool, loc token.Location) (ast.Expression, error) {
	tok, err := p.acceptOneOf([]token.Symbol{token.Integer, token.Double})
	if err != nil {
		return nil, p.promoteMismatch(err)
	}

	switch tok.Symbol {
	case token.Integer:
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Description: fmt.Sprintf("Integer literal %q out of range", tok.Text),
				Filename:    p.filename,
				Line:        loc.Line,
				Column:      loc.Column,
			}
		}
		if negative {
			value = -value
		}
		return &ast.LiteralInteger{Value: value}, nil
	default:
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &ParseError{
				Description: fmt.Sprintf("Double literal %q out of range", tok.Text),
				Filename:    p.filename,
				Line:        loc.Line,
				Column:      loc.Column,
			}
		}
		if negative {
			value = -value
		}
		return &ast.LiteralDouble{Value: value}, nil
	}
}

func (p *Parser) parseExpressionUnaryMessage(value ast.Expression) (ast.Expression, error) {
	selector, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryMessage{Receiver: value, Selector: selector}, nil
}

func (p *Parser) parseExpressionKeywordMessage(value ast.Expression) (ast.Expression, error) {
	var keywords []string
	var arguments []ast.Expression

	for {
		tok, err := p.accept(token.Keyword)
		if err != nil {
			if isMismatch(err) || err == ErrEndOfInput {
				break
			}
			return nil, err
		}
		keywords = append(keywords, tok.Text)

		arg, err := p.parseExpressionFormula()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, arg)
	}

	return &ast.KeywordMessage{Receiver: value, Keywords: keywords, Arguments: arguments}, nil
}

// parseExpressionFormula parses the right-hand side of a keyword-message
// argument: a binary-operand chain at full binary-operator precedence,
// so that `foo with: 1 + 2` parses the argument as `1 + 2` rather than
// stopping at `1`.
func (p *Parser) parseExpressionFormula() (ast.Expression, error) {
	value, err := p.parseExpressionBinaryOperand()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek(1)
		if err != nil {
			break
		}
		if tok.Is(token.OperatorSequence) || isBinaryOperator(tok.Symbol) {
			value, err = p.parseExpressionBinaryMessage(value)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	return value, nil
}

func (p *Parser) parseExpressionBinaryOperand() (ast.Expression, error) {
	value, err := p.parseExpressionPrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek(1)
		if err != nil || !tok.Is(token.Identifier) {
			break
		}
		value, err = p.parseExpressionUnaryMessage(value)
		if err != nil {
			return nil, err
		}
	}

	return value, nil
}

func (p *Parser) parseExpressionBinaryMessage(value ast.Expression) (ast.Expression, error) {
	loc, _ := p.peekLocation(1)
	tok, err := p.peek(1)
	if err != nil {
		return nil, err
	}

	var operator string
	switch {
	case isBinaryOperator(tok.Symbol):
		operator = binarySymbolToString(tok.Symbol)
	case tok.Is(token.OperatorSequence):
		operator = tok.Text
	default:
		return nil, &ParseError{
			Description: fmt.Sprintf("Expected binary operator, found %s", tok.Symbol),
			Filename:    p.filename,
			Line:        loc.Line,
			Column:      loc.Column,
		}
	}
	p.consume(1)

	right, err := p.parseExpressionBinaryOperand()
	if err != nil {
		return nil, err
	}

	return &ast.BinaryMessage{Receiver: value, Operator: operator, Argument: right}, nil
}
