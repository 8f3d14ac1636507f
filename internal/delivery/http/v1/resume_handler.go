package v1

import (
	"net/http"
	"strconv"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

// NewResumeHandler registers resume routes
func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	// Candidate routes
	resumes := r.Group("/resumes")
	{
		resumes.POST("", handler.Submit)
		resumes.GET("/my", handler.ListMine)
		resumes.PUT("/:id", handler.Edit)
		resumes.DELETE("/:id", handler.Withdraw)
	}

	// Moderator routes
	moderation := r.Group("/moderation/resumes")
	{
		moderation.GET("", handler.ListAll)
		moderation.PATCH("/:id/status", handler.SetStatus)
	}
}

// SubmitResumeRequest is the request payload for submitting a resume
type SubmitResumeRequest struct {
	Track        string `json:"track" binding:"required"`
	Content      string `json:"content"`
	JobType      string `json:"job_type"`
	PracticeType string `json:"practice_type"`
	Education    string `json:"education"`
	PhoneNumber  string `json:"phone_number"`
}

// EditResumeRequest is the request payload for editing a pending resume
type EditResumeRequest struct {
	Content      string `json:"content"`
	JobType      string `json:"job_type"`
	PracticeType string `json:"practice_type"`
	Education    string `json:"education"`
	PhoneNumber  string `json:"phone_number"`
}

// SetResumeStatusRequest is the moderator verdict payload
type SetResumeStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// Submit godoc
// @Summary      Submit a resume
// @Description  Submit a resume for a hiring or practice track (Candidate only)
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitResumeRequest  true  "Resume data"
// @Success      201   {object}  response.Response{data=domain.Resume}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Submit(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can submit resumes"))
		return
	}

	var req SubmitResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	attrs := domain.ResumeAttrs{
		JobType:      req.JobType,
		PracticeType: req.PracticeType,
		Education:    req.Education,
		PhoneNumber:  req.PhoneNumber,
	}

	resume, err := h.resumeUC.Submit(c, candidateFromContext(c), req.Track, req.Content, attrs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume submitted successfully", resume)
}

// ListMine godoc
// @Summary      List my resumes
// @Description  Get all resumes of the current candidate
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Resume}
// @Failure      401  {object}  response.Response
// @Router       /resumes/my [get]
// @Security     BearerAuth
func (h *ResumeHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	resumes, err := h.resumeUC.ListMine(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resumes retrieved", resumes)
}

// Edit godoc
// @Summary      Edit a pending resume
// @Description  Update content and attributes of an own resume that is still pending review
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Resume ID"
// @Param        body  body      EditResumeRequest  true  "Updated resume data"
// @Success      200   {object}  response.Response{data=domain.Resume}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /resumes/{id} [put]
// @Security     BearerAuth
func (h *ResumeHandler) Edit(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	resumeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid resume ID"))
		return
	}

	var req EditResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	attrs := domain.ResumeAttrs{
		JobType:      req.JobType,
		PracticeType: req.PracticeType,
		Education:    req.Education,
		PhoneNumber:  req.PhoneNumber,
	}

	resume, err := h.resumeUC.Edit(c, userID, resumeID, req.Content, attrs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume updated successfully", resume)
}

// Withdraw godoc
// @Summary      Withdraw a pending resume
// @Description  Delete an own resume that is still pending review
// @Tags         resumes
// @Produce      json
// @Param        id  path      int  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) Withdraw(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	resumeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid resume ID"))
		return
	}

	if err := h.resumeUC.Withdraw(c, userID, resumeID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume withdrawn", nil)
}

// ListAll godoc
// @Summary      List resumes for review
// @Description  Get all submitted resumes, optionally filtered by track and status (Moderator only)
// @Tags         moderation
// @Produce      json
// @Param        track   query     string  false  "Track filter (JOB or PRACTICE)"
// @Param        status  query     string  false  "Status filter (PENDING, ACCEPTED, REJECTED)"
// @Success      200     {object}  response.Response{data=[]domain.Resume}
// @Failure      403     {object}  response.Response
// @Router       /moderation/resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) ListAll(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can review resumes"))
		return
	}

	filter := domain.ResumeFilter{
		Track:  c.Query("track"),
		Status: c.Query("status"),
	}

	resumes, err := h.resumeUC.ListAll(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resumes retrieved", resumes)
}

// SetStatus godoc
// @Summary      Review a resume
// @Description  Accept or reject a submitted resume (Moderator only). Rejection requires a comment.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Resume ID"
// @Param        body  body      SetResumeStatusRequest  true  "Verdict"
// @Success      200   {object}  response.Response{data=domain.Resume}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /moderation/resumes/{id}/status [patch]
// @Security     BearerAuth
func (h *ResumeHandler) SetStatus(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can review resumes"))
		return
	}

	resumeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid resume ID"))
		return
	}

	var req SetResumeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resume, err := h.resumeUC.SetStatus(c, resumeID, req.Status, req.Comment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume status updated", resume)
}
