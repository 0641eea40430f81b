package controllers

import (
	"errors"
	"net/http"

	"github.com/caiocardoso28/flask-project/api/models"
	httpctx "github.com/caiocardoso28/flask-project/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ToggleLike flips the caller's membership in the post's liker set and
// reports which way it went. A fresh like also drops a notification into
// the post author's ledger; toggle and notification commit together.
func (server *Server) ToggleLike(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	pid, ok := parsePostID(c)
	if !ok {
		return
	}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	user := models.User{}
	actor, err := user.FindUserByID(server.DB, uid)
	if err != nil {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	outcome := ""
	err = server.DB.Transaction(func(tx *gorm.DB) error {
		post := models.Post{}
		postRecord, err := post.FindPostByID(tx, pid)
		if err != nil {
			return err
		}

		outcome, err = models.ToggleLike(tx, pid, actor.ID)
		if err != nil {
			return err
		}
		if outcome == models.LikeOutcomeLiked {
			_, err = models.AddNotification(tx, actor, postRecord, "liked")
		}
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			errList["No_post"] = "No Post Found"
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  errList,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error toggling like",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": outcome,
	})
}

func (server *Server) GetLikes(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	pid, ok := parsePostID(c)
	if !ok {
		return
	}

	// Check if the post exists:
	post := models.Post{}
	if _, err := post.FindPostByID(server.DB, pid); err != nil {
		errList["No_post"] = "No Post Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	like := models.Like{}
	likes, err := like.GetLikesInfo(server.DB, pid)
	if err != nil {
		errList["No_likes"] = "No Likes found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}
	dtos := make([]LikeDTO, 0, len(*likes))
	for i := range *likes {
		dtos = append(dtos, likeToDTO(&(*likes)[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"likes": dtos,
			"count": len(dtos),
		},
	})
}
