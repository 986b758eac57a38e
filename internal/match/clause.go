package match

// Clause is a predicate over a single field value. The concrete kinds are
// Literal, Set, Range and All.
type Clause interface {
	Matches(f Field, v Value) bool
	clause()
}

// Literal matches one exact value.
type Literal struct {
	Value Value
}

// Set matches any of its values.
type Set struct {
	Values []Value
}

// Range matches values between Low and High inclusive.
type Range struct {
	Low  Value
	High Value
}

// All matches every value, present or not.
type All struct{}

func (Literal) clause() {}
func (Set) clause()     {}
func (Range) clause()   {}
func (All) clause()     {}

func (c Literal) Matches(f Field, v Value) bool {
	return v.Present && Compare(f, v, c.Value) == 0
}

func (c Set) Matches(f Field, v Value) bool {
	if !v.Present {
		return false
	}
	for _, candidate := range c.Values {
		if Compare(f, v, candidate) == 0 {
			return true
		}
	}
	return false
}

func (c Range) Matches(f Field, v Value) bool {
	return v.Present && Compare(f, c.Low, v) <= 0 && Compare(f, v, c.High) <= 0
}

func (All) Matches(Field, Value) bool {
	return true
}
