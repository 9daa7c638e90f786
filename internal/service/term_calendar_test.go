package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikt-nva/fs-courses-api/internal/models"
)

func TestRelevantWindowFirstHalf(t *testing.T) {
	for month := time.January; month <= time.June; month++ {
		window := RelevantWindow(2022, month)
		require.Len(t, window, 1, month.String())
		assert.Equal(t, models.AllTerms, window[2022].Sorted(), month.String())
	}
}

func TestRelevantWindowSecondHalf(t *testing.T) {
	for month := time.July; month <= time.December; month++ {
		window := RelevantWindow(2022, month)
		require.Len(t, window, 2, month.String())
		assert.Equal(t, []models.Term{models.TermFall, models.TermWinter}, window[2022].Sorted(), month.String())
		assert.Equal(t, []models.Term{models.TermSpring, models.TermSummer}, window[2023].Sorted(), month.String())
	}
}

func TestWindowYearsSorted(t *testing.T) {
	assert.Equal(t, []int{2022, 2023}, windowYears(RelevantWindow(2022, time.August)))
	assert.Equal(t, []int{2022}, windowYears(RelevantWindow(2022, time.March)))
}
