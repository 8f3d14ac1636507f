package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewInterviewHandler registers interview routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	// Candidate routes
	interviews := r.Group("/interviews")
	{
		interviews.GET("/my", handler.ListMine)
	}

	// Moderator routes
	moderation := r.Group("/moderation/interviews")
	{
		moderation.POST("", handler.Schedule)
		moderation.GET("", handler.ListAll)
		moderation.PATCH("/:id/resolve", handler.Resolve)
	}
}

// ScheduleInterviewRequest is the request payload for scheduling an interview
type ScheduleInterviewRequest struct {
	CandidateID   string    `json:"candidate_id" binding:"required"`
	Track         string    `json:"track" binding:"required"`
	InterviewerID string    `json:"interviewer_id" binding:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	PracticeType  string    `json:"practice_type"`
}

// ResolveInterviewRequest is the request payload for resolving an interview
type ResolveInterviewRequest struct {
	Status  string `json:"status" binding:"required"`
	Result  string `json:"result"`
	Comment string `json:"comment"`
}

// ListMine godoc
// @Summary      List my interviews
// @Description  Get all interviews of the current candidate
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Interview}
// @Failure      401  {object}  response.Response
// @Router       /interviews/my [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	interviews, err := h.interviewUC.ListMine(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Schedule an interview for a candidate on a track (Moderator only)
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        body  body      ScheduleInterviewRequest  true  "Interview data"
// @Success      201   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /moderation/interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can schedule interviews"))
		return
	}

	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	interview, err := h.interviewUC.Schedule(c, req.CandidateID, req.Track, req.InterviewerID, req.ScheduledAt, req.PracticeType)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", interview)
}

// ListAll godoc
// @Summary      List interviews
// @Description  Get all interviews, optionally filtered by track and result (Moderator only)
// @Tags         moderation
// @Produce      json
// @Param        track   query     string  false  "Track filter (JOB or PRACTICE)"
// @Param        result  query     string  false  "Result filter (PENDING, SUCCESS, FAILURE)"
// @Success      200     {object}  response.Response{data=[]domain.Interview}
// @Failure      403     {object}  response.Response
// @Router       /moderation/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListAll(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can list interviews"))
		return
	}

	filter := domain.InterviewFilter{
		Track:  c.Query("track"),
		Result: c.Query("result"),
	}

	interviews, err := h.interviewUC.ListAll(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// Resolve godoc
// @Summary      Resolve an interview
// @Description  Complete or cancel a scheduled interview (Moderator only). Completion requires a result.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Interview ID"
// @Param        body  body      ResolveInterviewRequest  true  "Outcome"
// @Success      200   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /moderation/interviews/{id}/resolve [patch]
// @Security     BearerAuth
func (h *InterviewHandler) Resolve(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can resolve interviews"))
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid interview ID"))
		return
	}

	var req ResolveInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	interview, err := h.interviewUC.Resolve(c, interviewID, req.Status, req.Result, req.Comment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview resolved", interview)
}
