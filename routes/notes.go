package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"mindspace-notes/mindspace/models"
	"mindspace-notes/mindspace/services"

	"github.com/gin-gonic/gin"
)

func RegisterNoteRoutes(group *gin.RouterGroup, noteService services.NoteServiceInterface) {
	group.GET("/notes", func(c *gin.Context) { GetNotes(c, noteService) })
	group.POST("/notes", func(c *gin.Context) { CreateNote(c, noteService) })
	group.GET("/notes/favorites", func(c *gin.Context) { GetFavoriteNotes(c, noteService) })

	group.GET("/notes/:id", func(c *gin.Context) { GetNoteByID(c, noteService) })
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, noteService) })
	group.PATCH("/notes/:id/pin", func(c *gin.Context) { TogglePin(c, noteService) })
	group.PATCH("/notes/:id/favorite", func(c *gin.Context) { ToggleFavorite(c, noteService) })
}

func noteIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note id"})
		return 0, false
	}
	return uint(id), true
}

type createNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func CreateNote(c *gin.Context, noteService services.NoteServiceInterface) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := noteService.AddNote(c.Request.Context(), req.Title, req.Content, req.Category)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

func GetNoteByID(c *gin.Context, noteService services.NoteServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := noteService.GetNoteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func UpdateNote(c *gin.Context, noteService services.NoteServiceInterface) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	var note models.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note.ID = id

	updated, err := noteService.UpdateNote(c.Request.Context(), note)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type toggleRequest struct {
	Value bool `json:"value"`
}

func TogglePin(c *gin.Context, noteService services.NoteServiceInterface) {
	toggle(c, noteService.TogglePin)
}

func ToggleFavorite(c *gin.Context, noteService services.NoteServiceInterface) {
	toggle(c, noteService.ToggleFavorite)
}

func toggle(c *gin.Context, apply func(ctx context.Context, id uint, value bool) error) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := apply(c.Request.Context(), id, req.Value); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func GetNotes(c *gin.Context, noteService services.NoteServiceInterface) {
	ctx := c.Request.Context()

	if query := c.Query("q"); query != "" {
		notes, err := noteService.Search(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, notes)
		return
	}

	if category := c.Query("category"); category != "" {
		notes, err := noteService.NotesByCategory(ctx, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, notes)
		return
	}

	notes, err := noteService.ActiveNotes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func GetFavoriteNotes(c *gin.Context, noteService services.NoteServiceInterface) {
	notes, err := noteService.FavoriteNotes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}
