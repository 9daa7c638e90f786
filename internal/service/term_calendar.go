package service

import (
	"sort"
	"time"

	"github.com/sikt-nva/fs-courses-api/internal/models"
)

// midYear is the last month of the first half of the calendar year.
const midYear = time.June

// RelevantWindow returns, per calendar year, the terms considered currently
// taught in the given month. After June the window is the autumn half of this
// year plus the spring half of next year; otherwise it is the whole year.
func RelevantWindow(year int, month time.Month) map[int]models.TermSet {
	if month > midYear {
		return map[int]models.TermSet{
			year:     models.TermsFrom(models.TermFall),
			year + 1: models.TermsBefore(models.TermFall),
		}
	}
	return map[int]models.TermSet{
		year: models.TermsFrom(models.TermSpring),
	}
}

func windowYears(window map[int]models.TermSet) []int {
	years := make([]int, 0, len(window))
	for year := range window {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
