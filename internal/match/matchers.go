package match

// MediaSource is the from-value of songs found in the canonical tree.
const MediaSource = "media"

// Matchers maps each field to its clauses. A field without clauses is
// unconstrained, except From, which then accepts only the media tree.
type Matchers struct {
	clauses map[Field][]Clause
}

// New returns an empty matcher set.
func New() *Matchers {
	return &Matchers{clauses: make(map[Field][]Clause)}
}

// Add appends a clause for f.
func (m *Matchers) Add(f Field, c Clause) {
	m.clauses[f] = append(m.clauses[f], c)
}

// Clauses returns the clauses of f in the order they were added.
func (m *Matchers) Clauses(f Field) []Clause {
	return m.clauses[f]
}

// Constrained reports whether f has at least one clause.
func (m *Matchers) Constrained(f Field) bool {
	return len(m.clauses[f]) > 0
}

// MatchField is the OR of the clauses of f. An unconstrained field matches.
func (m *Matchers) MatchField(f Field, v Value) bool {
	clauses := m.clauses[f]
	if len(clauses) == 0 {
		return true
	}
	for _, c := range clauses {
		if c.Matches(f, v) {
			return true
		}
	}
	return false
}

// AcceptsSource reports whether songs drawn from the named source
// (MediaSource or a playlist name) may be selected.
func (m *Matchers) AcceptsSource(name string) bool {
	if !m.Constrained(FieldFrom) {
		return name == MediaSource
	}
	return m.MatchField(FieldFrom, Value{Present: true, Str: name})
}

// Match is the AND over every field.
func (m *Matchers) Match(song Valuer) bool {
	for _, f := range Fields() {
		v := song.Value(f)
		if f == FieldFrom {
			if !v.Present || !m.AcceptsSource(v.Str) {
				return false
			}
			continue
		}
		if !m.MatchField(f, v) {
			return false
		}
	}
	return true
}
