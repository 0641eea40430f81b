package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/caiocardoso28/flask-project/api/cache"
)

// feedCacheTTL bounds how stale a cached feed page can get for followers
// whose key was not invalidated directly.
const feedCacheTTL = 30 * time.Second

func feedCacheKey(userID uint) string {
	return fmt.Sprintf("feed:%d", userID)
}

func invalidateFeedCache(userID uint) {
	if userID == 0 {
		return
	}
	_ = cache.Delete(context.Background(), feedCacheKey(userID))
}
