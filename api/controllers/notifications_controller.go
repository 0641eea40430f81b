package controllers

import (
	"errors"
	"net/http"

	"github.com/caiocardoso28/flask-project/api/models"
	httpctx "github.com/caiocardoso28/flask-project/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// GetNewNotifications renders the "new" badge: everything past the
// caller's cursor, newest first, without consuming any of it.
func (server *Server) GetNewNotifications(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	hasNew, err := models.HasNewNotifications(server.DB, uid)
	if err != nil {
		server.respondNotifError(c, err)
		return
	}
	notifs, err := models.PeekNewNotifications(server.DB, uid)
	if err != nil {
		server.respondNotifError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"has_new":       hasNew,
			"notifications": notifsToDTOs(notifs),
		},
	})
}

// DrainNotifications marks the pending entries seen and hands back the
// next page of up to four older entries.
func (server *Server) DrainNotifications(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifs, err := models.DrainRecentNotifications(server.DB, uid)
	if err != nil {
		server.respondNotifError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"notifications": notifsToDTOs(notifs),
		},
	})
}

func (server *Server) respondNotifError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading notifications"})
}

func notifsToDTOs(notifs []models.Notif) []NotifDTO {
	dtos := make([]NotifDTO, 0, len(notifs))
	for i := range notifs {
		dtos = append(dtos, notifToDTO(&notifs[i]))
	}
	return dtos
}
