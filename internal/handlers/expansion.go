package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/services"
)

type ExpansionHandler struct {
	expansionService services.ExpansionService
}

func NewExpansionHandler(expansionService services.ExpansionService) *ExpansionHandler {
	return &ExpansionHandler{expansionService: expansionService}
}

type expandSubjectRequest struct {
	ArtworkID         string  `json:"artwork_id"`
	Subject           string  `json:"subject"`
	ParentExpansionID *string `json:"parent_expansion_id"`
}

// ExpandSubject creates or reuses the expansion for the requested triple and
// redirects to it. Repeated requests land on the same resource.
func (eh *ExpansionHandler) ExpandSubject(c *gin.Context) {
	var req expandSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	expansion, err := eh.expansionService.ExpandSubject(c.Request.Context(), req.ArtworkID, req.Subject, req.ParentExpansionID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/api/expansion/%s", expansion.ID))
}

func (eh *ExpansionHandler) GetExpansion(c *gin.Context) {
	expansion, err := eh.expansionService.GetExpansion(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"expansion": expansion})
}

func (eh *ExpansionHandler) GetExpansionTree(c *gin.Context) {
	tree, err := eh.expansionService.GetExpansionTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"expansions": tree})
}
