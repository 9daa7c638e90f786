package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sikt-nva/fs-courses-api/internal/models"
	"github.com/sikt-nva/fs-courses-api/pkg/config"
)

// InstitutionRepository reads FS credentials from the fs_institutions table.
type InstitutionRepository struct {
	db *sqlx.DB
}

// NewInstitutionRepository constructs the repository.
func NewInstitutionRepository(db *sqlx.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

// FindByCode returns the institution's credentials or sql.ErrNoRows.
func (r *InstitutionRepository) FindByCode(ctx context.Context, code int) (*models.InstitutionConfig, error) {
	const query = `SELECT code, username, password FROM fs_institutions WHERE code = $1 AND enabled = TRUE`
	var inst models.InstitutionConfig
	if err := r.db.GetContext(ctx, &inst, query, code); err != nil {
		return nil, err
	}
	return &inst, nil
}

// StaticInstitutionRepository serves credentials from the FS configuration document.
type StaticInstitutionRepository struct {
	byCode map[int]models.InstitutionConfig
}

// NewStaticInstitutionRepository indexes the configured institutions by code.
func NewStaticInstitutionRepository(institutions []config.InstitutionConfig) *StaticInstitutionRepository {
	byCode := make(map[int]models.InstitutionConfig, len(institutions))
	for _, inst := range institutions {
		byCode[inst.Code] = models.InstitutionConfig{Code: inst.Code, Username: inst.Username, Password: inst.Password}
	}
	return &StaticInstitutionRepository{byCode: byCode}
}

// FindByCode returns the institution's credentials or sql.ErrNoRows.
func (r *StaticInstitutionRepository) FindByCode(_ context.Context, code int) (*models.InstitutionConfig, error) {
	inst, ok := r.byCode[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &inst, nil
}
