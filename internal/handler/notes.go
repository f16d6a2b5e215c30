package handler

import (
	"net/http"

	"coffeeshop-app/internal/models"
	"coffeeshop-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct{}

type CreateNoteRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{
		Title:     req.Title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		CreatedBy: c.GetUint("userID"),
	}

	if err := database.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes := []models.Note{}
	if err := database.DB.Preload("User").
		Order("pinned desc, updated_at desc").Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Title  string `json:"title"`
		Body   string `json:"body"`
		Pinned *bool  `json:"pinned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Body != "" {
		updates["body"] = req.Body
	}
	if req.Pinned != nil {
		updates["pinned"] = *req.Pinned
	}

	res := database.DB.Model(&models.Note{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated"})
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	res := database.DB.Where("id = ?", c.Param("id")).Delete(&models.Note{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
