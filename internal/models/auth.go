package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the access token payload issued by the identity provider.
type JWTClaims struct {
	UserID string `json:"user_id"`
	// TopOrgID identifies the caller's top-level organization, for example
	// "https://api.cristin.no/v2/units/215.0.0.0".
	TopOrgID string `json:"top_org_id,omitempty"`
	jwt.RegisteredClaims
}

// CallerIdentity is the part of an authenticated caller the course listing needs.
type CallerIdentity struct {
	UserID   string
	TopOrgID string
}
