package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/models"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the profile of the currently authenticated user
// @Tags user
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	userValue, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found in context"))
		return
	}
	u := userValue.(models.User)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User retrieved successfully", UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}))
}
