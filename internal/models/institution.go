package models

// InstitutionConfig carries the FS credentials of one institution.
type InstitutionConfig struct {
	Code     int    `db:"code" json:"code"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}
