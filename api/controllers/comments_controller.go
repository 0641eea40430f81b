package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/caiocardoso28/flask-project/api/models"
	httpctx "github.com/caiocardoso28/flask-project/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateComment adds a comment to a post and notifies the post's author.
// Comment and notification commit in the same transaction.
func (server *Server) CreateComment(c *gin.Context) {

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
		errList["Unauthorized"] = "User not found"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errList["Invalid_body"] = "Unable to get request"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}
	comment := models.Comment{}
	err = json.Unmarshal(body, &comment)
	if err != nil {
		errList["Unmarshal_error"] = "Cannot unmarshal body"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	comment.UserID = actor.ID
	comment.PostID = pid
	comment.Prepare()
	errorMessages := comment.Validate("")
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	var commentCreated *models.Comment
	err = server.DB.Transaction(func(tx *gorm.DB) error {
		post := models.Post{}
		postRecord, err := post.FindPostByID(tx, pid)
		if err != nil {
			return err
		}
		commentCreated, err = comment.SaveComment(tx)
		if err != nil {
			return err
		}
		_, err = models.AddNotification(tx, actor, postRecord, "commented on")
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
			"error":  "Error saving comment",
		})
		return
	}

	commentCreated.Author = *actor
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": commentToDTO(commentCreated),
	})
}

func (server *Server) GetComments(c *gin.Context) {

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

	comment := models.Comment{}
	var comments *[]models.Comment
	var err error
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, convErr := strconv.Atoi(limitParam)
		if convErr != nil || limit < 0 {
			errList["Invalid_request"] = "Invalid Request"
			c.JSON(http.StatusBadRequest, gin.H{
				"status": http.StatusBadRequest,
				"error":  errList,
			})
			return
		}
		comments, err = comment.LastComments(server.DB, pid, limit)
	} else {
		comments, err = comment.GetComments(server.DB, pid)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error loading comments",
		})
		return
	}

	dtos := make([]CommentDTO, 0, len(*comments))
	for i := range *comments {
		dtos = append(dtos, commentToDTO(&(*comments)[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": dtos,
	})
}
