package cli

import (
	"github.com/spf13/pflag"

	"github.com/radian-software/fstunes/internal/app"
	"github.com/radian-software/fstunes/internal/config"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/sorter"
)

type matchArg struct {
	syntax match.Syntax
	expr   string
}

type sortArg struct {
	mode sorter.Mode
	keys string
}

// selectionFlags collects matcher and sort flags in command-line order.
type selectionFlags struct {
	matches        []matchArg
	sorts          []sortArg
	setDelimiter   string
	rangeDelimiter string
}

// matchValue appends every occurrence of one matcher flag.
type matchValue struct {
	syntax match.Syntax
	flags  *selectionFlags
}

func (v *matchValue) String() string { return "" }

func (v *matchValue) Set(s string) error {
	v.flags.matches = append(v.flags.matches, matchArg{syntax: v.syntax, expr: s})
	return nil
}

func (v *matchValue) Type() string {
	if v.syntax == match.SyntaxAll {
		return "FIELD"
	}
	return "FIELD=EXPR"
}

// sortValue appends every occurrence of one sort flag. The three sort flags
// share a list so interleaved flags keep their order.
type sortValue struct {
	mode  sorter.Mode
	flags *selectionFlags
}

func (v *sortValue) String() string { return "" }

func (v *sortValue) Set(s string) error {
	v.flags.sorts = append(v.flags.sorts, sortArg{mode: v.mode, keys: s})
	return nil
}

func (v *sortValue) Type() string { return "FIELDS" }

func (f *selectionFlags) addMatchFlags(fs *pflag.FlagSet) {
	fs.VarP(&matchValue{syntax: match.SyntaxAuto, flags: f}, "match", "m",
		"Filter songs (set if the value contains the set delimiter, range for integer fields with the range delimiter, literal otherwise)")
	fs.Var(&matchValue{syntax: match.SyntaxLiteral, flags: f}, "match-literal", "Filter songs by literal match")
	fs.Var(&matchValue{syntax: match.SyntaxSet, flags: f}, "match-set", "Filter songs by set membership")
	fs.Var(&matchValue{syntax: match.SyntaxRange, flags: f}, "match-range", "Filter songs by range inclusion")
	fs.Var(&matchValue{syntax: match.SyntaxAll, flags: f}, "match-all", "Do not filter songs on this field")
	fs.StringVar(&f.setDelimiter, "set-delimiter", "", "Delimiter to use for set filtering (default \",\")")
	fs.StringVar(&f.rangeDelimiter, "range-delimiter", "", "Delimiter to use for range filtering (default \"-\")")
}

func (f *selectionFlags) addSortFlags(fs *pflag.FlagSet) {
	fs.VarP(&sortValue{mode: sorter.Ascending, flags: f}, "sort", "s", "Sort by fields")
	fs.VarP(&sortValue{mode: sorter.Descending, flags: f}, "reverse", "r", "Sort by fields in reverse order")
	fs.VarP(&sortValue{mode: sorter.Shuffle, flags: f}, "shuffle", "x", "Shuffle by fields")
}

// selection parses the collected flags. Delimiters not given on the command
// line come from cfg.
func (f *selectionFlags) selection(cfg *config.Config) (app.Selection, error) {
	p := match.NewParser()
	if cfg != nil {
		p.SetDelimiter, p.RangeDelimiter = cfg.SetDelimiter, cfg.RangeDelimiter
	}
	if f.setDelimiter != "" {
		p.SetDelimiter = f.setDelimiter
	}
	if f.rangeDelimiter != "" {
		p.RangeDelimiter = f.rangeDelimiter
	}

	sel := app.Selection{Matchers: match.New()}
	for _, m := range f.matches {
		if err := p.Into(sel.Matchers, m.syntax, m.expr); err != nil {
			return app.Selection{}, err
		}
	}
	for _, s := range f.sorts {
		keys, err := sorter.ParseKeys(s.mode, s.keys)
		if err != nil {
			return app.Selection{}, err
		}
		sel.Keys = append(sel.Keys, keys...)
	}
	return sel, nil
}
