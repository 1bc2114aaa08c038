// Package grammar holds the lexer and PEG-style grammar for the
// probabilistic regex surface syntax: literals, escapes, dot, short and
// POSIX classes, bracketed classes with optional negation and an
// attached distribution clause, grouping, alternation, concatenation,
// quantifiers (bare or distribution-annotated), and start/end anchors.
package grammar

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "PosixClass", Pattern: `\[:(digit|space):\]`},
	{Name: "Escape", Pattern: `\\[\s\S]`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[\^$.()|?*+{}\[\]~,=]`},
	{Name: "Text", Pattern: `[^\^$.()|?*+{}\[\]~,=\\]+`},
})

// NumberLit captures a Float or Int token as a float64 argument value.
type NumberLit float64

func (n *NumberLit) Capture(values []string) error {
	f, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return err
	}
	*n = NumberLit(f)
	return nil
}

// Pattern is the top-level grammar node: an optional leading anchor, the
// alternation body, and an optional trailing anchor.
type Pattern struct {
	AnchorStart bool         `parser:"@'^'?"`
	Body        *Alternation `parser:"@@"`
	AnchorEnd   bool         `parser:"@'$'?"`
}

// Alternation is one or more concatenations separated by '|', lowest
// precedence in the grammar.
type Alternation struct {
	Concats []*Concatenation `parser:"@@ ( '|' @@ )*"`
}

// Concatenation is a juxtaposed run of quantified terms.
type Concatenation struct {
	Terms []*Term `parser:"@@*"`
}

// Term is an atom with an optional quantifier suffix.
type Term struct {
	Atom  *Atom       `parser:"@@"`
	Quant *Quantifier `parser:"@@?"`
}

// Quantifier is either a bare/distribution-annotated symbol quantifier
// (?, *, +) or a brace count ({n}), itself optionally annotated.
type Quantifier struct {
	Symbol *SymbolQuantifier `parser:"  @@"`
	Brace  *BraceQuantifier  `parser:"| @@"`
}

// SymbolQuantifier: one of ? * +, with an optional distribution clause.
type SymbolQuantifier struct {
	Op   string      `parser:"@( '?' | '*' | '+' )"`
	Dist *DistClause `parser:"@@?"`
}

// BraceQuantifier: {n}, with an optional distribution clause.
type BraceQuantifier struct {
	N    uint64      `parser:"'{' @Int"`
	Dist *DistClause `parser:"@@? '}'"`
}

// DistClause is the `~Name` or `~Name(args)` suffix attached to a
// quantifier or a character class.
type DistClause struct {
	Name string     `parser:"'~' @Ident"`
	Args []*DistArg `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
}

// DistArg is one positional or named argument inside a distribution's
// parameter list: `0.5` or `a=0.7` or `.=0.1`.
type DistArg struct {
	Key   *DistArgKey `parser:"( @@ '=' )?"`
	Value NumberLit   `parser:"@( Float | Int )"`
}

// DistArgKey is a single-character argument key, or '.' for the
// remainder slot.
type DistArgKey struct {
	Remainder bool   `parser:"  @'.'"`
	Char      string `parser:"| @( Ident | Text )"`
}

// Atom is the smallest matchable unit: a group, a bracketed class, an
// escape (short class or escaped literal), a dot, or a run of ordinary
// literal characters.
type Atom struct {
	Group *Group     `parser:"  @@"`
	Class *ClassAtom `parser:"| @@"`
	Esc   string     `parser:"| @Escape"`
	Dot   bool       `parser:"| @'.'"`
	Text  string     `parser:"| @( Ident | Text )"`
}

// Group is a parenthesised sub-alternation.
type Group struct {
	Alt *Alternation `parser:"'(' @@ ')'"`
}

// ClassAtom is a bracketed character class, optionally negated, with an
// optional distribution clause just before the closing bracket.
type ClassAtom struct {
	Negated bool          `parser:"'[' @'^'?"`
	Items   []*ClassItem  `parser:"@@*"`
	Dist    *DistClause   `parser:"@@? ']'"`
}

// ClassItem is one member of a bracketed class: a POSIX class token, an
// escape (short class or escaped literal), or a run of literal
// characters (expanded to individual members by the AST builder).
type ClassItem struct {
	Posix string `parser:"  @PosixClass"`
	Esc   string `parser:"| @Escape"`
	Chars string `parser:"| @( Ident | Text )"`
}

// Parser is the singleton built from the grammar above.
var Parser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
)

// Parse parses a full pattern source string into its grammar tree.
func Parse(source string) (*Pattern, error) {
	p, err := Parser.ParseString("", source)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return p, nil
}
