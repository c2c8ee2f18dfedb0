package ast

// NodeType is the closed set of node categories cops can subscribe to.
// Grammar-specific detail stays in Node.Kind.
type NodeType uint8

const (
	// Other covers every grammar node without a dedicated category.
	Other NodeType = iota
	// Program is the root of every tree.
	Program
	// String is a literal without interpolation ('a', "a", %q()).
	String
	// InterpolatedString is a double-quoted string with #{} parts.
	InterpolatedString
	// Heredoc is a <<~EOS literal; its Range covers only the opener.
	Heredoc
	Regex
	XString
	Symbol
	InterpolatedSymbol
	StringArray
	SymbolArray
	Interpolation
	Character
	Call
	Def
	Defs
	Class
	SingletonClass
	Module
	Identifier
	Constant
	InstanceVariable
	Assignment
	OperatorAssignment
	If
	Unless
	While
	Until
	For
	Case
	When
	Begin
	Rescue
	Ensure
	Return
	Yield
	Array
	Hash
	Pair
	Integer
	Float
	True
	False
	Nil
	Self
	Block
	DoBlock
	Lambda
	Arguments
	Parameters
	BodyStatement
	Then
	Else
	Elsif
	ParenthesizedStatements
	Binary
	Unary
	Conditional

	// NumNodeTypes is the size of per-type lookup tables.
	NumNodeTypes
)

var nodeTypeNames = [NumNodeTypes]string{
	Other:                   "other",
	Program:                 "program",
	String:                  "string",
	InterpolatedString:      "interpolated_string",
	Heredoc:                 "heredoc",
	Regex:                   "regex",
	XString:                 "xstring",
	Symbol:                  "symbol",
	InterpolatedSymbol:      "interpolated_symbol",
	StringArray:             "string_array",
	SymbolArray:             "symbol_array",
	Interpolation:           "interpolation",
	Character:               "character",
	Call:                    "call",
	Def:                     "def",
	Defs:                    "defs",
	Class:                   "class",
	SingletonClass:          "singleton_class",
	Module:                  "module",
	Identifier:              "identifier",
	Constant:                "constant",
	InstanceVariable:        "instance_variable",
	Assignment:              "assignment",
	OperatorAssignment:      "operator_assignment",
	If:                      "if",
	Unless:                  "unless",
	While:                   "while",
	Until:                   "until",
	For:                     "for",
	Case:                    "case",
	When:                    "when",
	Begin:                   "begin",
	Rescue:                  "rescue",
	Ensure:                  "ensure",
	Return:                  "return",
	Yield:                   "yield",
	Array:                   "array",
	Hash:                    "hash",
	Pair:                    "pair",
	Integer:                 "integer",
	Float:                   "float",
	True:                    "true",
	False:                   "false",
	Nil:                     "nil",
	Self:                    "self",
	Block:                   "block",
	DoBlock:                 "do_block",
	Lambda:                  "lambda",
	Arguments:               "arguments",
	Parameters:              "parameters",
	BodyStatement:           "body_statement",
	Then:                    "then",
	Else:                    "else",
	Elsif:                   "elsif",
	ParenthesizedStatements: "parenthesized_statements",
	Binary:                  "binary",
	Unary:                   "unary",
	Conditional:             "conditional",
}

func (t NodeType) String() string {
	if t < NumNodeTypes {
		return nodeTypeNames[t]
	}
	return "invalid"
}

// IsStringLike reports whether nodes of this type are non-code literals.
func (t NodeType) IsStringLike() bool {
	switch t {
	case String, InterpolatedString, Heredoc, Regex, XString,
		Symbol, InterpolatedSymbol, StringArray, SymbolArray, Character:
		return true
	default:
		return false
	}
}
