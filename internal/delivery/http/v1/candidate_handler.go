package v1

import (
	"net/http"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers candidate profile routes
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("/sync", handler.Sync)
		candidates.GET("/me", handler.GetProfile)
	}
}

// Sync godoc
// @Summary      Sync candidate profile
// @Description  Register the authenticated candidate from identity claims. Idempotent.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      401  {object}  response.Response
// @Router       /candidates/sync [post]
// @Security     BearerAuth
func (h *CandidateHandler) Sync(c *gin.Context) {
	candidate := candidateFromContext(c)

	result, err := h.candidateUC.EnsureRegistered(c, candidate)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile synced", result)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the profile of the currently logged-in candidate
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.candidateUC.GetProfile(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

// candidateFromContext rebuilds the candidate from the token claims placed on
// the context by the auth middleware
func candidateFromContext(c *gin.Context) *domain.Candidate {
	return &domain.Candidate{
		ID:       c.GetString(string(domain.KeyUserID)),
		Email:    c.GetString(string(domain.KeyUserEmail)),
		FullName: c.GetString(string(domain.KeyUserName)),
		Gender:   c.GetString(string(domain.KeyUserGender)),
	}
}
