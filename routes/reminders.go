package routes

import (
	"errors"
	"net/http"
	"time"

	"mindspace-notes/mindspace/services"

	"github.com/gin-gonic/gin"
)

func RegisterReminderRoutes(group *gin.RouterGroup, reminderService services.ReminderServiceInterface) {
	group.PUT("/notes/:id/reminder", func(c *gin.Context) { SetReminder(c, reminderService) })
	group.DELETE("/notes/:id/reminder", func(c *gin.Context) { CancelReminder(c, reminderService) })
	group.GET("/reminders/upcoming", func(c *gin.Context) { GetUpcomingReminders(c, reminderService) })
}

type setReminderRequest struct {
	Time time.Time `json:"time" binding:"required"`
}

func SetReminder(c *gin.Context, reminderService services.ReminderServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req setReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := reminderService.SetReminder(c.Request.Context(), id, req.Time)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, note)
}

func CancelReminder(c *gin.Context, reminderService services.ReminderServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := reminderService.CancelReminder(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func GetUpcomingReminders(c *gin.Context, reminderService services.ReminderServiceInterface) {
	notes, err := reminderService.UpcomingReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}
