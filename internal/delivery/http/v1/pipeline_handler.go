package v1

import (
	"net/http"
	"time"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PipelineHandler struct {
	pipelineUC domain.PipelineUsecase
}

// NewPipelineHandler registers pipeline aggregator routes
func NewPipelineHandler(r *gin.RouterGroup, pipelineUC domain.PipelineUsecase) {
	handler := &PipelineHandler{pipelineUC: pipelineUC}

	// Candidate routes
	pipeline := r.Group("/pipeline")
	{
		pipeline.GET("/status", handler.GetMyStatus)
	}

	// Moderator routes
	moderation := r.Group("/moderation/candidates/:candidateId")
	{
		moderation.GET("/status", handler.GetCandidateStatus)
		moderation.POST("/hire", handler.ConfirmHire)
		moderation.POST("/reject", handler.RejectFinal)
	}
}

// ConfirmHireRequest is the hire confirmation payload. The hire date is a
// calendar date; the message defaults to the standard congratulation when
// empty and may use the {hireDate} placeholder.
type ConfirmHireRequest struct {
	Track    string `json:"track" binding:"required"`
	HireDate string `json:"hire_date" binding:"required"`
	Message  string `json:"message"`
}

// RejectFinalRequest names the track being terminally rejected
type RejectFinalRequest struct {
	Track string `json:"track" binding:"required"`
}

// GetMyStatus godoc
// @Summary      Get my pipeline status
// @Description  Derive the current final status of the candidate's pipeline on a track
// @Tags         pipeline
// @Produce      json
// @Param        track  query     string  true  "Track (JOB or PRACTICE)"
// @Success      200    {object}  response.Response{data=domain.PipelineStatus}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /pipeline/status [get]
// @Security     BearerAuth
func (h *PipelineHandler) GetMyStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	status, err := h.pipelineUC.DeriveFinalStatus(c, userID, c.Query("track"))
	if err != nil {
		c.Error(err)
		return
	}

	// Candidates see the derived status, not the full snapshot
	status.Snapshot = nil
	response.Success(c, http.StatusOK, "Pipeline status derived", status)
}

// GetCandidateStatus godoc
// @Summary      Get a candidate's pipeline status
// @Description  Derive a candidate's final status with the full stage snapshot (Moderator only)
// @Tags         moderation
// @Produce      json
// @Param        candidateId  path      string  true  "Candidate ID"
// @Param        track        query     string  true  "Track (JOB or PRACTICE)"
// @Success      200          {object}  response.Response{data=domain.PipelineStatus}
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /moderation/candidates/{candidateId}/status [get]
// @Security     BearerAuth
func (h *PipelineHandler) GetCandidateStatus(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can view candidate pipelines"))
		return
	}

	status, err := h.pipelineUC.DeriveFinalStatus(c, c.Param("candidateId"), c.Query("track"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Pipeline status derived", status)
}

// ConfirmHire godoc
// @Summary      Confirm a hire
// @Description  Create the terminal employee record for a candidate awaiting confirmation (Moderator only)
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        candidateId  path      string              true  "Candidate ID"
// @Param        body         body      ConfirmHireRequest  true  "Hire details"
// @Success      201          {object}  response.Response{data=domain.Employee}
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /moderation/candidates/{candidateId}/hire [post]
// @Security     BearerAuth
func (h *PipelineHandler) ConfirmHire(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can confirm hires"))
		return
	}

	var req ConfirmHireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		c.Error(apperror.ValidationFields("Validation failed", map[string]string{
			"hire_date": "Must be a date in YYYY-MM-DD format",
		}))
		return
	}

	employee, err := h.pipelineUC.ConfirmHire(c, c.Param("candidateId"), req.Track, hireDate, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Hire confirmed", employee)
}

// RejectFinal godoc
// @Summary      Reject a candidate
// @Description  Terminally reject a candidate's pipeline on a track (Moderator only). Idempotent.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        candidateId  path      string              true  "Candidate ID"
// @Param        body         body      RejectFinalRequest  true  "Track"
// @Success      200          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /moderation/candidates/{candidateId}/reject [post]
// @Security     BearerAuth
func (h *PipelineHandler) RejectFinal(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can reject candidates"))
		return
	}

	var req RejectFinalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.pipelineUC.RejectFinal(c, userID, c.Param("candidateId"), req.Track); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate rejected", nil)
}
