package intelligence

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/services"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// Show godoc
// @Summary Get tool intelligence
// @Description Get the enrichment record for a tool. Token-authenticated integration endpoint.
// @Tags external
// @Produce json
// @Security ApiToken
// @Param slug path string true "Tool slug"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /external/tools/{slug}/intelligence [get]
func Show(c *gin.Context) {
	record, err := services.GetIntelligenceByToolSlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Tool not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch intelligence"))
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Tool has not been enriched yet"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Intelligence retrieved successfully", record))
}

// Upsert godoc
// @Summary Update tool intelligence
// @Description Merge the given fields into a tool's enrichment record and recompute its
// @Description completeness score. Token-authenticated integration endpoint.
// @Tags external
// @Accept json
// @Produce json
// @Security ApiToken
// @Param slug path string true "Tool slug"
// @Param body body services.IntelligenceUpdate true "Fields to merge"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /external/tools/{slug}/intelligence [put]
func Upsert(c *gin.Context) {
	var update services.IntelligenceUpdate
	if !utils.BindAndValidate(c, &update) {
		return
	}

	record, err := services.UpsertIntelligence(c.Param("slug"), update)
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Tool not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update intelligence"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Intelligence updated successfully", record))
}
