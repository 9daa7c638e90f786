package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sikt-nva/fs-courses-api/internal/middleware"
	"github.com/sikt-nva/fs-courses-api/internal/models"
)

func callerFromContext(c *gin.Context) (models.CallerIdentity, bool) {
	claims := middleware.Claims(c)
	if claims == nil {
		return models.CallerIdentity{}, false
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return models.CallerIdentity{UserID: userID, TopOrgID: claims.TopOrgID}, true
}
