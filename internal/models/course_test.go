package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortCoursesNorwegianOrder(t *testing.T) {
	courses := []Course{
		{Code: "Å", Term: "VÅR", Year: 2023},
		{Code: "Æ", Term: "HØST", Year: 2022},
		{Code: "Ø", Term: "VÅR", Year: 2023},
		{Code: "A", Term: "VÅR", Year: 2023},
		{Code: "A", Term: "HØST", Year: 2022},
	}

	SortCourses(courses)

	assert.Equal(t, []Course{
		{Code: "A", Term: "HØST", Year: 2022},
		{Code: "Æ", Term: "HØST", Year: 2022},
		{Code: "A", Term: "VÅR", Year: 2023},
		{Code: "Ø", Term: "VÅR", Year: 2023},
		{Code: "Å", Term: "VÅR", Year: 2023},
	}, courses)
}

func TestCourseComparatorNorwegianLetters(t *testing.T) {
	cc := NewCourseComparator()
	letters := []string{"A", "Z", "Æ", "Ø", "Å"}
	for i := 0; i < len(letters)-1; i++ {
		a := Course{Code: letters[i], Term: "VÅR", Year: 2023}
		b := Course{Code: letters[i+1], Term: "VÅR", Year: 2023}
		assert.Negative(t, cc.Compare(a, b), "%s < %s", letters[i], letters[i+1])
		assert.Positive(t, cc.Compare(b, a), "%s > %s", letters[i+1], letters[i])
	}

	courses := []Course{
		{Code: "Å", Term: "VÅR", Year: 2023},
		{Code: "Z", Term: "VÅR", Year: 2023},
		{Code: "Ø", Term: "VÅR", Year: 2023},
		{Code: "Æ", Term: "VÅR", Year: 2023},
	}
	SortCourses(courses)
	codes := make([]string, 0, len(courses))
	for _, c := range courses {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"Z", "Æ", "Ø", "Å"}, codes)
}

func TestCourseJSONCarriesType(t *testing.T) {
	raw, err := json.Marshal(Course{Code: "A", Term: "VÅR", Year: 2023})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Course","code":"A","term":"VÅR","year":2023}`, string(raw))

	var decoded Course
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, Course{Code: "A", Term: "VÅR", Year: 2023}, decoded)

	raw, err = json.Marshal(NewCourseList(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"CourseList","courses":[]}`, string(raw))
}

func TestSortCoursesTermSequenceBeforeCode(t *testing.T) {
	courses := []Course{
		{Code: "A", Term: "VIT", Year: 2022},
		{Code: "B", Term: "SOM", Year: 2022},
		{Code: "C", Term: "VÅR", Year: 2022},
		{Code: "D", Term: "HØST", Year: 2022},
	}

	SortCourses(courses)

	got := make([]string, 0, len(courses))
	for _, c := range courses {
		got = append(got, c.Term)
	}
	assert.Equal(t, []string{"VÅR", "SOM", "HØST", "VIT"}, got)
}

func TestCourseComparatorIsTotalAndAntisymmetric(t *testing.T) {
	courses := []Course{
		{Code: "A", Term: "VÅR", Year: 2022},
		{Code: "a", Term: "VÅR", Year: 2022},
		{Code: "Z", Term: "VÅR", Year: 2022},
		{Code: "Æ", Term: "VÅR", Year: 2022},
		{Code: "Ø", Term: "VÅR", Year: 2022},
		{Code: "Å", Term: "VÅR", Year: 2022},
		{Code: "AA", Term: "VÅR", Year: 2022},
		{Code: "A", Term: "HØST", Year: 2022},
		{Code: "A", Term: "VÅR", Year: 2023},
		{Code: "A", Term: "XYZ", Year: 2022},
	}
	cc := NewCourseComparator()

	for i, a := range courses {
		assert.Zero(t, cc.Compare(a, a))
		for j, b := range courses {
			if i == j {
				continue
			}
			ab := cc.Compare(a, b)
			ba := cc.Compare(b, a)
			require.NotZero(t, ab, "%v vs %v", a, b)
			assert.Equal(t, ab < 0, ba > 0, "%v vs %v", a, b)
		}
	}
}

func TestSortCoursesIsIdempotent(t *testing.T) {
	courses := []Course{
		{Code: "Ø", Term: "VÅR", Year: 2023},
		{Code: "B", Term: "HØST", Year: 2022},
		{Code: "A", Term: "HØST", Year: 2022},
	}
	SortCourses(courses)
	once := append([]Course(nil), courses...)

	SortCourses(courses)
	assert.Equal(t, once, courses)
}

func TestNewCourseListNeverNull(t *testing.T) {
	list := NewCourseList(nil)
	assert.Equal(t, "CourseList", list.Type)
	assert.NotNil(t, list.Courses)
	assert.Empty(t, list.Courses)
}
