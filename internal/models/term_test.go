package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermCodesRoundTrip(t *testing.T) {
	for _, term := range AllTerms {
		got, ok := TermFromCode(term.Code())
		assert.True(t, ok)
		assert.Equal(t, term, got)
	}
	_, ok := TermFromCode("HOST")
	assert.False(t, ok)
}

func TestTermsFromAndBefore(t *testing.T) {
	assert.Equal(t, []Term{TermFall, TermWinter}, TermsFrom(TermFall).Sorted())
	assert.Equal(t, []Term{TermSpring, TermSummer}, TermsBefore(TermFall).Sorted())
	assert.Equal(t, AllTerms, TermsFrom(TermSpring).Sorted())
	assert.Empty(t, TermsBefore(TermSpring))
}

func TestTermSetHasCode(t *testing.T) {
	set := NewTermSet(TermFall, TermWinter)
	assert.True(t, set.HasCode("HØST"))
	assert.True(t, set.HasCode("VIT"))
	assert.False(t, set.HasCode("VÅR"))
	assert.False(t, set.HasCode("unknown"))
}
