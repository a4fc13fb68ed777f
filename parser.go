package matchspec

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexical classes of the matchspec language. Token covers package
// names, version literals, and build strings, which all share one
// character set (alphanumerics, '-', '_', '.', and glob wildcards).
// Operator alternatives are ordered longest first so ">=" never lexes
// as ">" then "=".
var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Operator", Pattern: `===|~=|==|!=|>=|<=|=|>|<`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Bar", Pattern: `\|`},
	{Name: "Slash", Pattern: `/`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Quote", Pattern: `['"]`},
	{Name: "Token", Pattern: `[A-Za-z0-9_.*?-]+`},
})

// AST types for the participle grammar. The grammar is looser than the
// language on purpose: names, operators, and clause literals are all
// optional here, and the convert step turns each omission into its
// precise parse error.

// specAST is the root: optional channel prefix, package name, version
// clauses, "=build" suffix, and a bracketed key=value list.
type specAST struct {
	Prefix  *prefixAST   `parser:"@@?"`
	Name    *string      `parser:"@Token?"`
	Version *compoundAST `parser:"@@?"`
	Build   *string      `parser:"( '='? @Token )?"`
	Keys    []keyValAST  `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
}

// prefixAST covers `channel(/subdir)::` and `channel(/subdir):namespace:`.
// The "::" spelling is the empty-namespace special case.
type prefixAST struct {
	Channel   *string `parser:"@Token?"`
	Subdir    *string `parser:"( '/' @Token )?"`
	Namespace *string `parser:"( '::' | ':' @Token? ':' )"`
}

// compoundAST is the version selector part: one clause plus any number
// of separator-joined clauses.
type compoundAST struct {
	First constraintAST `parser:"@@"`
	Rest  []tailAST     `parser:"@@*"`
}

// constraintAST is a single clause. A bare literal (no operator) means
// implicit equality; operators are collected greedily so doubled
// spellings like ">>" surface as one unknown operator.
type constraintAST struct {
	Pos     lexer.Position
	Ops     []string `parser:"@Operator*"`
	Version *string  `parser:"@Token?"`
}

type tailAST struct {
	Pos        lexer.Position
	Sep        string         `parser:"@( Comma | Bar )"`
	Constraint *constraintAST `parser:"@@?"`
}

// keyValAST is one bracket entry. Quoted values may carry their own
// leading operators, as in [version=">=2.24"].
type keyValAST struct {
	Pos   lexer.Position
	Key   string   `parser:"@Token"`
	Ops   []string `parser:"@Operator+"`
	Value string   `parser:"( ( Quote @Operator* @Token Quote ) | @Token )"`
}

var specParser = participle.MustBuild[specAST](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(8),
)

// compoundParser parses a version expression on its own, as found in
// quoted bracket values.
var compoundParser = participle.MustBuild[compoundAST](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(8),
)

// Parse parses a matchspec expression into a MatchSpec. Failures are
// reported as a *ParseError identifying the malformed segment; a
// malformed clause is never silently dropped or guessed at.
func Parse(input string) (*MatchSpec, error) {
	trimmed := strings.TrimSpace(input)
	if perr := checkChannelPrefix(trimmed); perr != nil {
		return nil, perr
	}
	if trimmed == "" {
		return nil, &ParseError{Kind: ErrEmptyPackageName}
	}

	ast, err := specParser.ParseString("", trimmed)
	if err != nil {
		return nil, wrapGrammarError(err, trimmed)
	}
	return convertSpec(ast, trimmed)
}

// MustParse is Parse for known-good expressions; it panics on error.
// Intended for tests and package-level constants.
func MustParse(input string) *MatchSpec {
	ms, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return ms
}

// checkChannelPrefix rejects channel/subdir prefixes that are started
// but never terminated, which the grammar alone would misreport as a
// generic syntax error. A '/' or a lone ':' before the first selector
// character can only belong to a channel prefix.
func checkChannelPrefix(s string) *ParseError {
	head := s
	if i := strings.IndexAny(s, " =<>!~,["); i >= 0 {
		head = s[:i]
	}
	slash := strings.IndexByte(head, '/') >= 0
	colons := strings.Count(head, ":")
	switch {
	case colons == 0 && !slash:
		return nil
	case strings.Contains(head, "::"):
		return nil
	case colons >= 2:
		return nil
	default:
		return &ParseError{Kind: ErrUnterminatedChannelPrefix, Input: head}
	}
}

func wrapGrammarError(err error, input string) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		off := perr.Position().Offset
		rest := input
		if off >= 0 && off <= len(input) {
			rest = input[off:]
		}
		return &ParseError{Kind: ErrSyntax, Input: rest, Offset: off, Detail: perr.Message()}
	}
	return err
}

// convertSpec turns the loose AST into a MatchSpec, producing the
// precise parse errors the grammar defers.
func convertSpec(ast *specAST, input string) (*MatchSpec, error) {
	ms := &MatchSpec{}
	if p := ast.Prefix; p != nil {
		if p.Channel != nil {
			ms.Channel = *p.Channel
		}
		if p.Subdir != nil {
			ms.Subdir = *p.Subdir
		}
		if p.Namespace != nil {
			ms.Namespace = *p.Namespace
		}
	}
	if ast.Name == nil {
		return nil, &ParseError{Kind: ErrEmptyPackageName, Input: input}
	}
	ms.Package = *ast.Name

	if ast.Version != nil {
		cs, err := convertCompound(ast.Version)
		if err != nil {
			return nil, err
		}
		ms.Version = cs
	}
	if ast.Build != nil {
		ms.Build = *ast.Build
	}
	for _, kv := range ast.Keys {
		if err := applyKeyValue(ms, kv); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

func convertCompound(ast *compoundAST) (*CompoundSelector, error) {
	first, ok, err := convertConstraint(&ast.First)
	if err != nil {
		return nil, err
	}
	if !ok {
		// No version clause at all: valid for a bare package name, but
		// a separator cannot follow nothing.
		if len(ast.Rest) > 0 {
			t := ast.Rest[0]
			return nil, &ParseError{Kind: ErrMalformedSeparator, Input: t.Sep, Offset: t.Pos.Offset}
		}
		return nil, nil
	}

	cs := &CompoundSelector{Constraints: []Constraint{first}}
	for i, tail := range ast.Rest {
		or := tail.Sep == "|"
		if i == 0 {
			cs.Any = or
		} else if or != cs.Any {
			return nil, &ParseError{Kind: ErrMalformedSeparator, Input: tail.Sep, Offset: tail.Pos.Offset}
		}
		c, ok, err := convertConstraint(tail.Constraint)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &ParseError{Kind: ErrMalformedSeparator, Input: tail.Sep, Offset: tail.Pos.Offset}
		}
		cs.Constraints = append(cs.Constraints, c)
	}
	return cs, nil
}

// convertConstraint returns ok=false for an empty clause; the caller
// decides whether that is legal at its position.
func convertConstraint(ast *constraintAST) (Constraint, bool, error) {
	if ast == nil || (len(ast.Ops) == 0 && ast.Version == nil) {
		return Constraint{}, false, nil
	}
	if len(ast.Ops) == 0 {
		// Bare literal, implicit equality.
		return Constraint{Selector: SelEqual, Version: *ast.Version}, true, nil
	}
	op := strings.Join(ast.Ops, "")
	sel, known := selectorFromToken(op)
	if !known {
		return Constraint{}, false, &ParseError{Kind: ErrUnknownSelectorOperator, Input: op, Offset: ast.Pos.Offset}
	}
	if ast.Version == nil {
		return Constraint{}, false, &ParseError{Kind: ErrDanglingSelector, Input: op, Offset: ast.Pos.Offset}
	}
	return Constraint{Selector: sel, Version: *ast.Version}, true, nil
}

// applyKeyValue records a bracket constraint and folds the recognized
// keys into their dedicated fields. String-valued keys only take effect
// with an equality selector; build_number accepts any selector, and
// repeated build_number keys AND together.
func applyKeyValue(ms *MatchSpec, kv keyValAST) error {
	op := strings.Join(kv.Ops, "")
	sel, known := selectorFromToken(op)
	if !known {
		return &ParseError{Kind: ErrUnknownSelectorOperator, Input: op, Offset: kv.Pos.Offset}
	}
	ms.KeyValues = append(ms.KeyValues, KeyValue{Key: kv.Key, Selector: sel, Value: kv.Value})

	switch kv.Key {
	case "build":
		if sel == SelEqual {
			ms.Build = kv.Value
		}
	case "channel":
		if sel == SelEqual {
			ms.Channel = kv.Value
		}
	case "subdir":
		if sel == SelEqual {
			ms.Subdir = kv.Value
		}
	case "namespace":
		if sel == SelEqual {
			ms.Namespace = kv.Value
		}
	case "version":
		// The quoted form carries a full version expression. It only
		// takes effect when the spec has no inline version selector.
		ast, err := compoundParser.ParseString("", kv.Value)
		if err != nil {
			return wrapGrammarError(err, kv.Value)
		}
		cs, err := convertCompound(ast)
		if err != nil {
			return err
		}
		if ms.Version == nil {
			ms.Version = cs
		}
	case "build_number":
		if ms.BuildNumber == nil {
			ms.BuildNumber = &CompoundSelector{}
		}
		ms.BuildNumber.Constraints = append(ms.BuildNumber.Constraints,
			Constraint{Selector: sel, Version: kv.Value})
	}
	return nil
}
