// Package ast defines the data-only AST produced by pkg/parser: a fully
// resolved tree for a single SOM class definition. Nodes carry no
// behavior beyond the marker methods that close the Expression and
// Method tagged unions. Source positions are a lexer/parser diagnostic
// concern, not part of the tree; see token.Location and lexer.Item.
package ast

// Class is the root of the tree: a single class definition with its
// superclass name, instance-side and class-side fields, and methods.
type Class struct {
	Name            string
	SuperclassName  string
	InstanceFields  []string
	ClassFields     []string
	InstanceMethods []Method
	ClassMethods    []Method
}

// Method is implemented by the two method variants a class can define:
// a PrimitiveMethod (no body, delegated to the runtime) or a
// NativeMethod (a SOM-source body).
type Method interface {
	methodNode()
}

// Pattern describes how a method is invoked: unary (no arguments, a bare
// Selector), binary (Selector holds the one- or multi-character
// operator, Arguments holds its single operand name), or keyword
// (Selector is the concatenation of every "keyword:" part, Arguments
// holds one name per part).
type Pattern struct {
	Selector  string
	Arguments []string
}

// PrimitiveMethod is a method whose implementation is supplied by the
// runtime rather than SOM source; the class definition only declares
// its signature.
type PrimitiveMethod struct {
	Pattern Pattern
}

func (*PrimitiveMethod) methodNode() {}

// NativeMethod is a method with a SOM-source body: local declarations
// followed by a sequence of expression statements.
type NativeMethod struct {
	Pattern    Pattern
	Locals     []string
	Statements []Expression
}

func (*NativeMethod) methodNode() {}

// Expression is implemented by every expression-tree node: literals,
// variable references, assignment, the three message-send shapes,
// block literals, and non-local return.
type Expression interface {
	expressionNode()
}

// LiteralNil is the `nil` pseudo-variable literal.
type LiteralNil struct{}

func (*LiteralNil) expressionNode() {}

// LiteralBoolean is the `true` or `false` pseudo-variable literal.
type LiteralBoolean struct {
	Value bool
}

func (*LiteralBoolean) expressionNode() {}

// LiteralInteger is an integer literal, including a leading-minus
// negative literal folded at parse time.
type LiteralInteger struct {
	Value int64
}

func (*LiteralInteger) expressionNode() {}

// LiteralDouble is a floating-point literal.
type LiteralDouble struct {
	Value float64
}

func (*LiteralDouble) expressionNode() {}

// LiteralString is a quoted string literal with escapes already
// resolved (none are recognized by this dialect; the text is verbatim).
type LiteralString struct {
	Value string
}

func (*LiteralString) expressionNode() {}

// LiteralSymbol is a `#selector`-style symbol literal. Value holds the
// resolved selector, whether spelled as `#foo`, `#foo:bar:`, `#+`, or
// `#'arbitrary string'`.
type LiteralSymbol struct {
	Value string
}

func (*LiteralSymbol) expressionNode() {}

// Variable is a reference to a named identifier: a local, a method
// argument, a field, a global, or the pseudo-variables self/super.
type Variable struct {
	Name string
}

func (*Variable) expressionNode() {}

// Assignment assigns the value of Value to every name in Names, in the
// order written (`a := b := 'x'` produces one Assignment with
// Names ["a", "b"], not two nested assignments).
type Assignment struct {
	Names []string
	Value Expression
}

func (*Assignment) expressionNode() {}

// UnaryMessage sends the zero-argument message Selector to Receiver.
type UnaryMessage struct {
	Receiver Expression
	Selector string
}

func (*UnaryMessage) expressionNode() {}

// BinaryMessage sends the one-argument operator message Operator to
// Receiver with Argument.
type BinaryMessage struct {
	Receiver Expression
	Operator string
	Argument Expression
}

func (*BinaryMessage) expressionNode() {}

// KeywordMessage sends the (possibly multi-part) keyword message formed
// by concatenating Keywords to Receiver, with one Arguments entry per
// keyword part.
type KeywordMessage struct {
	Receiver  Expression
	Keywords  []string
	Arguments []Expression
}

func (*KeywordMessage) expressionNode() {}

// Block is a block literal: zero or more parameters, zero or more local
// declarations, and a body of statements.
type Block struct {
	Parameters []string
	Locals     []string
	Statements []Expression
}

func (*Block) expressionNode() {}

// Return is a non-local return (`^expr`) from the enclosing method.
type Return struct {
	Value Expression
}

func (*Return) expressionNode() {}
