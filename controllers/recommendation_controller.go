package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vrent/services"
)

// GetRecommendations godoc
// @Summary Recommend vehicles for the authenticated user
// @Description Scores vehicles the caller has not reviewed yet against the
// rating patterns of the most similar reviewers.
// @Tags recommendations
// @Produce json
// @Router /recommendations [get]
func GetRecommendations(c *gin.Context) {
	currentUserID := c.MustGet("currentUserID").(uint)

	recommendations, err := services.Recommend(currentUserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 0, "mess": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 0, "mess": "Failed to compute recommendations", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Recommendations fetched successfully", "data": recommendations})
}
