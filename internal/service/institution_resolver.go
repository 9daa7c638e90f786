package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sikt-nva/fs-courses-api/internal/models"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
)

type institutionRepository interface {
	FindByCode(ctx context.Context, code int) (*models.InstitutionConfig, error)
}

// InstitutionResolver maps a caller to the FS institution and its credentials.
type InstitutionResolver struct {
	repo   institutionRepository
	logger *zap.Logger
}

// NewInstitutionResolver constructs a resolver backed by repo.
func NewInstitutionResolver(repo institutionRepository, logger *zap.Logger) *InstitutionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstitutionResolver{repo: repo, logger: logger}
}

// ResolveInstitutionCode derives the FS institution code from the caller's
// top-level organization identifier.
func (r *InstitutionResolver) ResolveInstitutionCode(identity models.CallerIdentity) (int, bool) {
	return InstitutionCodeFromOrgID(identity.TopOrgID)
}

// LookupCredentials returns the FS credentials for code. The boolean is false
// when the institution has no FS integration.
func (r *InstitutionResolver) LookupCredentials(ctx context.Context, code int) (models.InstitutionConfig, bool, error) {
	inst, err := r.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.InstitutionConfig{}, false, nil
		}
		r.logger.Error("failed to load institution credentials", zap.Int("institution", code), zap.Error(err))
		return models.InstitutionConfig{}, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load institution")
	}
	return *inst, true, nil
}

// InstitutionCodeFromOrgID extracts the institution code from an organization
// identifier such as ".../units/215.0.0.0" or "215.0.0.0.0".
func InstitutionCodeFromOrgID(orgID string) (int, bool) {
	orgID = strings.TrimRight(strings.TrimSpace(orgID), "/")
	if orgID == "" {
		return 0, false
	}
	if i := strings.IndexAny(orgID, "?#"); i >= 0 {
		orgID = orgID[:i]
	}
	last := orgID[strings.LastIndex(orgID, "/")+1:]
	head, _, _ := strings.Cut(last, ".")
	code, err := strconv.Atoi(head)
	if err != nil || code <= 0 {
		return 0, false
	}
	return code, true
}
