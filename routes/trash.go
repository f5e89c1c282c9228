package routes

import (
	"net/http"
	"time"

	"mindspace-notes/mindspace/models"
	"mindspace-notes/mindspace/services"

	"github.com/gin-gonic/gin"
)

func RegisterTrashRoutes(group *gin.RouterGroup, trashService services.TrashServiceInterface) {
	group.GET("/trash", func(c *gin.Context) { GetTrashNotes(c, trashService) })
	group.GET("/trash/count", func(c *gin.Context) { GetTrashCount(c, trashService) })
	group.DELETE("/trash", func(c *gin.Context) { EmptyTrash(c, trashService) })

	group.POST("/notes/:id/trash", func(c *gin.Context) { MoveToTrash(c, trashService) })
	group.POST("/trash/:id/restore", func(c *gin.Context) { RestoreFromTrash(c, trashService) })
	group.DELETE("/trash/:id", func(c *gin.Context) { DeletePermanently(c, trashService) })
}

type trashedNote struct {
	models.Note
	DaysLeft int `json:"days_left"`
}

func GetTrashNotes(c *gin.Context, trashService services.TrashServiceInterface) {
	notes, err := trashService.TrashNotes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	result := make([]trashedNote, 0, len(notes))
	for _, note := range notes {
		result = append(result, trashedNote{Note: note, DaysLeft: note.DaysLeftInTrash(now)})
	}
	c.JSON(http.StatusOK, result)
}

func GetTrashCount(c *gin.Context, trashService services.TrashServiceInterface) {
	count, err := trashService.TrashCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func MoveToTrash(c *gin.Context, trashService services.TrashServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := trashService.MoveToTrash(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func RestoreFromTrash(c *gin.Context, trashService services.TrashServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := trashService.RestoreFromTrash(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func DeletePermanently(c *gin.Context, trashService services.TrashServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	if err := trashService.DeletePermanently(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func EmptyTrash(c *gin.Context, trashService services.TrashServiceInterface) {
	if err := trashService.EmptyTrash(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
