package controllers

import (
	"net/http"

	"github.com/caiocardoso28/flask-project/api/models"
	httpctx "github.com/caiocardoso28/flask-project/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// GetSuggestions samples up to two users the caller might want to follow.
// Deliberately uncached: each request reshuffles the candidate pool.
func (server *Server) GetSuggestions(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user := models.User{}
	suggestions, err := user.SuggestUsers(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading suggestions"})
		return
	}

	dtos := make([]UserSummaryDTO, 0, len(suggestions))
	for i := range suggestions {
		dtos = append(dtos, userToSummaryDTO(&suggestions[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": dtos,
	})
}
