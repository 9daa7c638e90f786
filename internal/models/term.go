package models

// Term is one of the four fixed academic terms in an FS year.
type Term int

const (
	TermSpring Term = iota + 1
	TermSummer
	TermFall
	TermWinter
)

// AllTerms lists every term in chronological order.
var AllTerms = []Term{TermSpring, TermSummer, TermFall, TermWinter}

var termCodes = map[Term]string{
	TermSpring: "VÅR",
	TermSummer: "SOM",
	TermFall:   "HØST",
	TermWinter: "VIT",
}

var termsByCode = func() map[string]Term {
	m := make(map[string]Term, len(termCodes))
	for term, code := range termCodes {
		m[code] = term
	}
	return m
}()

// Code returns the native FS term code.
func (t Term) Code() string {
	return termCodes[t]
}

// Seq is the chronological position of the term within a year.
func (t Term) Seq() int {
	return int(t)
}

func (t Term) String() string {
	switch t {
	case TermSpring:
		return "spring"
	case TermSummer:
		return "summer"
	case TermFall:
		return "fall"
	case TermWinter:
		return "winter"
	default:
		return "unknown"
	}
}

// TermFromCode maps an FS term code to a Term.
func TermFromCode(code string) (Term, bool) {
	t, ok := termsByCode[code]
	return t, ok
}

// TermsFrom returns the terms whose sequence is at or after t.
func TermsFrom(t Term) TermSet {
	set := TermSet{}
	for _, candidate := range AllTerms {
		if candidate.Seq() >= t.Seq() {
			set[candidate] = struct{}{}
		}
	}
	return set
}

// TermsBefore returns the terms whose sequence is strictly before t.
func TermsBefore(t Term) TermSet {
	set := TermSet{}
	for _, candidate := range AllTerms {
		if candidate.Seq() < t.Seq() {
			set[candidate] = struct{}{}
		}
	}
	return set
}

// TermSet is an unordered set of terms.
type TermSet map[Term]struct{}

// NewTermSet builds a set from the given terms.
func NewTermSet(terms ...Term) TermSet {
	set := make(TermSet, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether t is in the set.
func (s TermSet) Has(t Term) bool {
	_, ok := s[t]
	return ok
}

// HasCode reports whether the FS term code belongs to a term in the set.
func (s TermSet) HasCode(code string) bool {
	t, ok := TermFromCode(code)
	return ok && s.Has(t)
}

// Sorted returns the members in chronological order.
func (s TermSet) Sorted() []Term {
	out := make([]Term, 0, len(s))
	for _, t := range AllTerms {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
