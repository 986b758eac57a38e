package match

import (
	"strconv"
	"strings"

	"github.com/radian-software/fstunes/internal/errmsg"
)

// Syntax selects how a matcher expression is interpreted.
type Syntax int

const (
	// SyntaxAuto picks set, range or literal from the expression.
	SyntaxAuto Syntax = iota
	SyntaxLiteral
	SyntaxSet
	SyntaxRange
	SyntaxAll
)

// Default delimiters.
const (
	DefaultSetDelimiter   = ","
	DefaultRangeDelimiter = "-"
)

// Parser turns FIELD=EXPR arguments into clauses.
type Parser struct {
	SetDelimiter   string
	RangeDelimiter string
}

// NewParser returns a parser with the default delimiters.
func NewParser() Parser {
	return Parser{SetDelimiter: DefaultSetDelimiter, RangeDelimiter: DefaultRangeDelimiter}
}

// Parse parses one expression. For SyntaxAll the expression is just the
// field name.
func (p Parser) Parse(syntax Syntax, expr string) (Field, Clause, error) {
	if syntax == SyntaxAll {
		f, err := ParseField(expr)
		if err != nil {
			return 0, nil, err
		}
		return f, All{}, nil
	}

	name, arg, ok := strings.Cut(expr, "=")
	if !ok {
		return 0, nil, errmsg.Configuration(errmsg.OpParseMatcher, "expected FIELD=EXPR, got %q", expr)
	}
	f, err := ParseField(name)
	if err != nil {
		return 0, nil, err
	}

	switch syntax {
	case SyntaxLiteral:
		c, err := p.literal(f, arg)
		return f, c, err
	case SyntaxSet:
		c, err := p.set(f, arg)
		return f, c, err
	case SyntaxRange:
		c, err := p.rangeClause(f, arg)
		return f, c, err
	case SyntaxAuto:
		if p.SetDelimiter != "" && strings.Contains(arg, p.SetDelimiter) {
			c, err := p.set(f, arg)
			return f, c, err
		}
		if f.IsInteger() {
			if low, high, ok := p.splitIntRange(arg); ok {
				return f, Range{Low: low, High: high}, nil
			}
		}
		c, err := p.literal(f, arg)
		return f, c, err
	}
	return 0, nil, errmsg.Configuration(errmsg.OpParseMatcher, "unknown matcher syntax %d", syntax)
}

// Into parses expr and adds the clause to m.
func (p Parser) Into(m *Matchers, syntax Syntax, expr string) error {
	f, c, err := p.Parse(syntax, expr)
	if err != nil {
		return err
	}
	m.Add(f, c)
	return nil
}

func (p Parser) literal(f Field, arg string) (Clause, error) {
	v, err := coerce(f, arg)
	if err != nil {
		return nil, err
	}
	return Literal{Value: v}, nil
}

func (p Parser) set(f Field, arg string) (Clause, error) {
	if p.SetDelimiter == "" {
		return nil, errmsg.Configuration(errmsg.OpParseMatcher, "empty set delimiter")
	}
	parts := strings.Split(arg, p.SetDelimiter)
	values := make([]Value, 0, len(parts))
	for _, part := range parts {
		v, err := coerce(f, part)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return Set{Values: values}, nil
}

func (p Parser) rangeClause(f Field, arg string) (Clause, error) {
	if p.RangeDelimiter == "" {
		return nil, errmsg.Configuration(errmsg.OpParseMatcher, "empty range delimiter")
	}
	if f.IsInteger() {
		low, high, ok := p.splitIntRange(arg)
		if !ok {
			return nil, errmsg.Configuration(errmsg.OpParseMatcher,
				"invalid range %q for field %s, expected LOW%sHIGH", arg, f, p.RangeDelimiter)
		}
		return Range{Low: low, High: high}, nil
	}
	low, high, ok := strings.Cut(arg, p.RangeDelimiter)
	if !ok {
		return nil, errmsg.Configuration(errmsg.OpParseMatcher,
			"invalid range %q for field %s, expected LOW%sHIGH", arg, f, p.RangeDelimiter)
	}
	return Range{Low: Value{Present: true, Str: low}, High: Value{Present: true, Str: high}}, nil
}

// splitIntRange tries every occurrence of the delimiter so that negative
// bounds such as "-3--1" still split correctly.
func (p Parser) splitIntRange(arg string) (low, high Value, ok bool) {
	if p.RangeDelimiter == "" {
		return Value{}, Value{}, false
	}
	for i := 0; i < len(arg); {
		j := strings.Index(arg[i:], p.RangeDelimiter)
		if j < 0 {
			break
		}
		at := i + j
		lo, errLo := strconv.ParseInt(arg[:at], 10, 64)
		hi, errHi := strconv.ParseInt(arg[at+len(p.RangeDelimiter):], 10, 64)
		if errLo == nil && errHi == nil {
			return Value{Present: true, Int: lo}, Value{Present: true, Int: hi}, true
		}
		i = at + 1
	}
	return Value{}, Value{}, false
}

func coerce(f Field, arg string) (Value, error) {
	if !f.IsInteger() {
		return Value{Present: true, Str: arg}, nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return Value{}, errmsg.Configuration(errmsg.OpParseMatcher, "invalid integer %q for field %s", arg, f)
	}
	return Value{Present: true, Int: n}, nil
}
