package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikt-nva/fs-courses-api/internal/models"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
)

type fakeInstitutionRepo struct {
	institutions map[int]models.InstitutionConfig
	err          error
}

func (f *fakeInstitutionRepo) FindByCode(_ context.Context, code int) (*models.InstitutionConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	inst, ok := f.institutions[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &inst, nil
}

func TestInstitutionCodeFromOrgID(t *testing.T) {
	tests := []struct {
		orgID string
		code  int
		ok    bool
	}{
		{"215.0.0.0.0", 215, true},
		{"https://api.cristin.no/v2/units/215.0.0.0", 215, true},
		{"https://api.cristin.no/v2/units/194.63.10.0/", 194, true},
		{"https://api.cristin.no/v2/units/185.0.0.0?lang=nb", 185, true},
		{"", 0, false},
		{"https://api.cristin.no/v2/units/abc.0.0.0", 0, false},
		{"https://api.cristin.no/v2/units/", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.orgID, func(t *testing.T) {
			code, ok := InstitutionCodeFromOrgID(tt.orgID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestLookupCredentials(t *testing.T) {
	resolver := NewInstitutionResolver(&fakeInstitutionRepo{institutions: map[int]models.InstitutionConfig{
		215: {Code: 215, Username: "u", Password: "p"},
	}}, nil)

	inst, ok, err := resolver.LookupCredentials(context.Background(), 215)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u", inst.Username)

	_, ok, err = resolver.LookupCredentials(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupCredentialsStoreFailure(t *testing.T) {
	resolver := NewInstitutionResolver(&fakeInstitutionRepo{err: errors.New("connection reset")}, nil)

	_, ok, err := resolver.LookupCredentials(context.Background(), 215)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}
