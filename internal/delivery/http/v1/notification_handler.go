package v1

import (
	"net/http"
	"strconv"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler registers notification routes
func NewNotificationHandler(r *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", handler.ListMine)
		notifications.PATCH("/read-all", handler.MarkAllRead)
		notifications.PATCH("/:id/read", handler.MarkRead)
	}
}

// ListMine godoc
// @Summary      List my notifications
// @Description  Get all notifications of the current user, newest first
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Notification}
// @Failure      401  {object}  response.Response
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	notifications, err := h.notificationUC.ListMine(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", notifications)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Description  Flag one own notification as read. Repeats are no-ops.
// @Tags         notifications
// @Produce      json
// @Param        id  path      int  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /notifications/{id}/read [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid notification ID"))
		return
	}

	if err := h.notificationUC.MarkRead(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead godoc
// @Summary      Mark all notifications as read
// @Description  Flag every own notification as read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /notifications/read-all [patch]
// @Security     BearerAuth
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.notificationUC.MarkAllRead(c, userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "All notifications marked as read", nil)
}
