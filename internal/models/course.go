package models

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Course is a course taught in a given FS term.
type Course struct {
	Code string `json:"code"`
	Term string `json:"term"`
	Year int    `json:"year"`
}

// MarshalJSON tags every course with its type, e.g.
// {"type":"Course","code":"A","term":"VÅR","year":2023}.
func (c Course) MarshalJSON() ([]byte, error) {
	type plain Course
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{Type: "Course", plain: plain(c)})
}

// CourseList is the response payload of the currently taught courses endpoint.
type CourseList struct {
	Type    string   `json:"type"`
	Courses []Course `json:"courses"`
}

// NewCourseList wraps courses, never yielding a null list.
func NewCourseList(courses []Course) CourseList {
	if courses == nil {
		courses = []Course{}
	}
	return CourseList{Type: "CourseList", Courses: courses}
}

// x/text carries no nb tailoring and falls back to root order for it. Nynorsk
// shares the Bokmål alphabet (... Z Æ Ø Å).
var norwegianBokmal = language.Make("nn")

// CourseComparator orders courses by year, term sequence and code, where codes
// use Norwegian Bokmål collation (Z < Æ < Ø < Å). A comparator is not safe for
// concurrent use.
type CourseComparator struct {
	collator *collate.Collator
}

// NewCourseComparator returns a comparator with its own collator.
func NewCourseComparator() *CourseComparator {
	return &CourseComparator{collator: collate.New(norwegianBokmal)}
}

// Compare returns a negative number when a sorts before b, positive when after
// and zero only when a and b are equal.
func (cc *CourseComparator) Compare(a, b Course) int {
	if a.Year != b.Year {
		return compareInt(a.Year, b.Year)
	}
	if d := compareInt(termSeq(a.Term), termSeq(b.Term)); d != 0 {
		return d
	}
	if d := cc.collator.CompareString(a.Code, b.Code); d != 0 {
		return d
	}
	if d := strings.Compare(a.Code, b.Code); d != 0 {
		return d
	}
	return strings.Compare(a.Term, b.Term)
}

// SortCourses sorts courses in place.
func SortCourses(courses []Course) {
	cc := NewCourseComparator()
	sort.SliceStable(courses, func(i, j int) bool {
		return cc.Compare(courses[i], courses[j]) < 0
	})
}

// unknown codes sort after every known term
func termSeq(code string) int {
	if t, ok := TermFromCode(code); ok {
		return t.Seq()
	}
	return len(AllTerms) + 1
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
