package types

// Range describes a half-open [Start, End) span of byte offsets into contract source.
type Range struct {
	// Start is the offset of the first byte covered by the range.
	Start int `json:"start"`
	// End is the offset one past the last byte covered by the range.
	End int `json:"end"`
}

// Contains returns a boolean indicating whether the provided range lies entirely within this one.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// TokenKind describes the lexical category of a Token.
type TokenKind string

const (
	// TokenKindIdentifier represents identifiers and property names.
	TokenKindIdentifier TokenKind = "Identifier"
	// TokenKindKeyword represents reserved words such as `class`, `try` or `catch`.
	TokenKindKeyword TokenKind = "Keyword"
	// TokenKindPunctuator represents operators and delimiters.
	TokenKindPunctuator TokenKind = "Punctuator"
	// TokenKindString represents a quoted string literal. Its value excludes the quotes.
	TokenKindString TokenKind = "String"
	// TokenKindNumeric represents a numeric literal.
	TokenKindNumeric TokenKind = "Numeric"
	// TokenKindBoolean represents the `true` and `false` literals.
	TokenKindBoolean TokenKind = "Boolean"
	// TokenKindNull represents the `null` literal.
	TokenKindNull TokenKind = "Null"
	// TokenKindTemplate represents a template literal. Its value excludes the backticks.
	TokenKindTemplate TokenKind = "Template"
	// TokenKindRegularExpression represents a regular expression literal.
	TokenKindRegularExpression TokenKind = "RegularExpression"
)

// IsLiteral returns a boolean indicating whether tokens of this kind carry a literal value.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokenKindString, TokenKindNumeric, TokenKindBoolean, TokenKindNull, TokenKindTemplate, TokenKindRegularExpression:
		return true
	default:
		return false
	}
}

// Token describes a single lexical item of contract source.
type Token struct {
	// Kind describes the lexical category of the token.
	Kind TokenKind `json:"kind"`
	// Value is the token text (see TokenKind for literal normalization).
	Value string `json:"value"`
	// Range is the location of the token in the source.
	Range Range `json:"range"`
}

// Comment describes a line or block comment found in contract source.
type Comment struct {
	// Text is the comment body without its `//`, `/*` or `*/` delimiters.
	Text string `json:"text"`
	// Block indicates whether this is a `/* */` comment.
	Block bool `json:"block"`
	// Range is the location of the comment, including its delimiters.
	Range Range `json:"range"`
}

// ParseResult is the product of parsing contract source: the syntax tree along with the token and comment streams,
// each in source order.
type ParseResult struct {
	// Program is the root of the syntax tree.
	Program *Program
	// Tokens is the ordered token stream.
	Tokens []Token
	// Comments is the ordered comment list.
	Comments []Comment
}
