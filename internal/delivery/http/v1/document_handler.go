package v1

import (
	"net/http"
	"strconv"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Uploads above this size are rejected before touching storage
const maxUploadBytes = 10 << 20

type DocumentHandler struct {
	documentUC domain.DocumentUsecase
}

// NewDocumentHandler registers document routes
func NewDocumentHandler(r *gin.RouterGroup, uploadLimiter gin.HandlerFunc, documentUC domain.DocumentUsecase) {
	handler := &DocumentHandler{documentUC: documentUC}

	// Candidate routes
	documents := r.Group("/documents")
	{
		documents.GET("", handler.ListMine)
		documents.POST("/:slot", uploadLimiter, handler.Upload)
		documents.GET("/:id/file", handler.ResolveFile)
	}

	// Moderator routes
	moderation := r.Group("/moderation")
	{
		moderation.GET("/candidates/:candidateId/documents", handler.ListForCandidate)
		moderation.POST("/candidates/:candidateId/notify-missing", handler.NotifyMissing)
		moderation.PATCH("/documents/:id/review", handler.Review)
		moderation.GET("/documents/:id/audit", handler.ListAudit)
	}
}

// ReviewDocumentRequest is the moderator verdict payload
type ReviewDocumentRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// NotifyMissingRequest names the track whose document stage is checked
type NotifyMissingRequest struct {
	Track string `json:"track" binding:"required"`
}

// ListMine godoc
// @Summary      List my document slots
// @Description  Get the full slot catalog for the current candidate with uploaded documents attached
// @Tags         documents
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.SlotView}
// @Failure      401  {object}  response.Response
// @Router       /documents [get]
// @Security     BearerAuth
func (h *DocumentHandler) ListMine(c *gin.Context) {
	views, err := h.documentUC.ListMine(c, candidateFromContext(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Documents retrieved", views)
}

// Upload godoc
// @Summary      Upload a document
// @Description  Upload a file into a catalog slot. The track's interview must be passed first. A rejected slot accepts a replacement file.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        slot   path      string  true  "Catalog slot"
// @Param        track  formData  string  true  "Track (JOB or PRACTICE)"
// @Param        file   formData  file    true  "Document file"
// @Success      201    {object}  response.Response{data=domain.Document}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /documents/{slot} [post]
// @Security     BearerAuth
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can upload documents"))
		return
	}

	slot := c.Param("slot")
	track := c.PostForm("track")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("File is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.Validation("File exceeds the 10 MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	upload := domain.DocumentUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	}

	doc, err := h.documentUC.Upload(c, userID, track, slot, upload)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Document uploaded", doc)
}

// ResolveFile godoc
// @Summary      Get a document download link
// @Description  Resolve a short-lived download URL for an own document
// @Tags         documents
// @Produce      json
// @Param        id  path      int  true  "Document ID"
// @Success      200  {object}  response.Response{data=string}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id}/file [get]
// @Security     BearerAuth
func (h *DocumentHandler) ResolveFile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid document ID"))
		return
	}

	// Moderators may fetch any candidate's file
	requesterID := userID
	if role == domain.RoleModerator {
		requesterID = ""
	}

	url, err := h.documentUC.ResolveFile(c, requesterID, documentID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Download link resolved", url)
}

// ListForCandidate godoc
// @Summary      List a candidate's document slots
// @Description  Get the full slot catalog for a candidate with uploaded documents attached (Moderator only)
// @Tags         moderation
// @Produce      json
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {object}  response.Response{data=[]domain.SlotView}
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /moderation/candidates/{candidateId}/documents [get]
// @Security     BearerAuth
func (h *DocumentHandler) ListForCandidate(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can review documents"))
		return
	}

	views, err := h.documentUC.ListForCandidate(c, c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Documents retrieved", views)
}

// Review godoc
// @Summary      Review a document
// @Description  Accept or reject an uploaded document (Moderator only). Rejection requires a comment.
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Document ID"
// @Param        body  body      ReviewDocumentRequest  true  "Verdict"
// @Success      200   {object}  response.Response{data=domain.Document}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /moderation/documents/{id}/review [patch]
// @Security     BearerAuth
func (h *DocumentHandler) Review(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can review documents"))
		return
	}

	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid document ID"))
		return
	}

	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	doc, err := h.documentUC.Review(c, userID, documentID, req.Status, req.Comment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Document reviewed", doc)
}

// ListAudit godoc
// @Summary      Get a document's audit trail
// @Description  Get the full status history of a document, oldest first (Moderator only)
// @Tags         moderation
// @Produce      json
// @Param        id  path      int  true  "Document ID"
// @Success      200  {object}  response.Response{data=[]domain.DocumentAudit}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /moderation/documents/{id}/audit [get]
// @Security     BearerAuth
func (h *DocumentHandler) ListAudit(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can view the audit trail"))
		return
	}

	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid document ID"))
		return
	}

	entries, err := h.documentUC.ListAudit(c, documentID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Audit trail retrieved", entries)
}

// NotifyMissing godoc
// @Summary      Notify a candidate about missing documents
// @Description  Compute the candidate's missing required slots and send a reminder notification (Moderator only)
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        candidateId  path      string                true  "Candidate ID"
// @Param        body         body      NotifyMissingRequest  true  "Track"
// @Success      200          {object}  response.Response{data=domain.MissingReport}
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /moderation/candidates/{candidateId}/notify-missing [post]
// @Security     BearerAuth
func (h *DocumentHandler) NotifyMissing(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleModerator {
		c.Error(apperror.Forbidden("Only moderators can send document reminders"))
		return
	}

	var req NotifyMissingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	report, err := h.documentUC.NotifyMissing(c, c.Param("candidateId"), req.Track)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Missing document check completed", report)
}
