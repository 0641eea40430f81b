package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/caiocardoso28/flask-project/api/models"
	"github.com/caiocardoso28/flask-project/api/utils/formaterror"
	httpctx "github.com/caiocardoso28/flask-project/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

func parsePostID(c *gin.Context) (uint, bool) {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errList := map[string]string{"Invalid_request": "Invalid Request"}
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return 0, false
	}
	return uint(pid), true
}

func (server *Server) CreatePost(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	author := models.User{}
	authorRecord, err := author.FindUserByID(server.DB, uid)
	if err != nil {
		errList["Unauthorized"] = "Unauthorized"
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
	post := models.Post{}
	err = json.Unmarshal(body, &post)
	if err != nil {
		errList["Unmarshal_error"] = "Cannot unmarshal body"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	post.AuthorID = authorRecord.ID
	if post.Title == "" {
		// Post pages headline with the author's handle
		post.Title = authorRecord.Username
	}
	post.Prepare()
	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	postCreated, err := post.SavePost(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		errList = formattedError
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  errList,
		})
		return
	}

	invalidateFeedCache(authorRecord.ID)

	dto, err := postToDTO(server.DB, postCreated, authorRecord.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error loading post",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": dto,
	})
}

func (server *Server) GetPosts(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	post := models.Post{}
	posts, err := post.FindAllPosts(server.DB)
	if err != nil {
		errList["No_post"] = "No Post Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	viewerID, _ := httpctx.CurrentUserID(c)
	dtos, err := postsToDTOs(server.DB, posts, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error loading posts",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": dtos,
	})
}

func (server *Server) GetPost(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	pid, ok := parsePostID(c)
	if !ok {
		return
	}

	post := models.Post{}
	postRecord, err := post.FindPostByID(server.DB, pid)
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
			"error":  "Error loading post",
		})
		return
	}

	viewerID, _ := httpctx.CurrentUserID(c)
	dto, err := postToDTO(server.DB, postRecord, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error loading post",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": dto,
	})
}

func (server *Server) GetUserPosts(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		errList["No_user"] = "No User Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	post := models.Post{}
	posts, err := post.FindUserPosts(server.DB, user.ID)
	if err != nil {
		errList["No_post"] = "No Post Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	viewerID, _ := httpctx.CurrentUserID(c)
	dtos, err := postsToDTOs(server.DB, posts, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error loading posts",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": dtos,
	})
}

func (server *Server) UpdatePost(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	pid, ok := parsePostID(c)
	if !ok {
		return
	}

	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	post := models.Post{}
	existingPost, err := post.FindPostByID(server.DB, pid)
	if err != nil {
		errList["No_post"] = "No Post Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	// Only the author may edit
	if existingPost.AuthorID != requestorID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to update this post"})
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
	updated := models.Post{}
	err = json.Unmarshal(body, &updated)
	if err != nil {
		errList["Unmarshal_error"] = "Cannot unmarshal body"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	updated.ID = existingPost.ID
	updated.AuthorID = existingPost.AuthorID
	if updated.Title == "" {
		updated.Title = existingPost.Title
	}
	updated.Prepare()
	errorMessages := updated.Validate()
	if len(errorMessages) > 0 {
		errList = errorMessages
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return
	}

	updatedPost, err := updated.UpdateAPost(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		errList = formattedError
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  errList,
		})
		return
	}

	invalidateFeedCache(existingPost.AuthorID)

	dto, err := postToDTO(server.DB, updatedPost, requestorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error loading post",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": dto,
	})
}

func (server *Server) DeletePost(c *gin.Context) {

	//clear previous error if any
	errList = map[string]string{}

	pid, ok := parsePostID(c)
	if !ok {
		return
	}

	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		errList["Unauthorized"] = "Unauthorized"
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  errList,
		})
		return
	}

	post := models.Post{}
	existingPost, err := post.FindPostByID(server.DB, pid)
	if err != nil {
		errList["No_post"] = "No Post Found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}

	if existingPost.AuthorID != requestorID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not authorized to delete this post"})
		return
	}

	_, err = existingPost.DeleteAPost(server.DB, pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Error deleting post",
		})
		return
	}

	invalidateFeedCache(existingPost.AuthorID)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Post deleted",
	})
}
