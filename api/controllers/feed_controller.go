package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/caiocardoso28/flask-project/api/cache"
	"github.com/caiocardoso28/flask-project/api/models"
	httpctx "github.com/caiocardoso28/flask-project/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// GetFeed returns the reverse-chronological union of the caller's own
// posts and posts by everyone they follow. The composed page is cached
// briefly per user; follow changes and the caller's own writes invalidate
// it, so staleness is bounded by the TTL.
func (server *Server) GetFeed(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx := context.Background()
	cacheKey := feedCacheKey(uid)
	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	posts, err := models.FindFeedPosts(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error composing feed"})
		return
	}

	dtos, err := postsToDTOs(server.DB, posts, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error composing feed"})
		return
	}

	payload := gin.H{
		"status":   http.StatusOK,
		"response": dtos,
	}
	if encoded, err := json.Marshal(payload); err == nil {
		_ = cache.Set(ctx, cacheKey, string(encoded), feedCacheTTL)
	}
	c.JSON(http.StatusOK, payload)
}
