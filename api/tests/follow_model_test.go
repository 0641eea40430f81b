package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/caiocardoso28/flask-project/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFollowUnfollowRoundtrip(t *testing.T) {
	server := setupServer(t)

	follower := seedUser(t, server.DB, "follower")
	followed := seedUser(t, server.DB, "followed")

	r := gin.Default()
	r.Use(AuthMiddlewareForTests(follower.ID))
	r.POST("/api/v1/users/:id/follow", server.FollowUser)
	r.DELETE("/api/v1/users/:id/follow", server.UnfollowUser)

	// Follow
	followReq, _ := http.NewRequest(http.MethodPost, "/api/v1/users/"+strconv.Itoa(int(followed.ID))+"/follow", nil)
	followW := httptest.NewRecorder()
	r.ServeHTTP(followW, followReq)

	assert.Equal(t, http.StatusCreated, followW.Code)

	following, err := models.IsFollowing(server.DB, follower.ID, followed.ID)
	if err != nil {
		t.Fatalf("Error checking follow edge: %v", err)
	}
	assert.True(t, following)

	var followerRow, followedRow models.User
	server.DB.First(&followerRow, follower.ID)
	server.DB.First(&followedRow, followed.ID)
	assert.Equal(t, int64(1), followerRow.FollowingCount)
	assert.Equal(t, int64(1), followedRow.FollowersCount)

	// Unfollow
	unfollowReq, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/"+strconv.Itoa(int(followed.ID))+"/follow", nil)
	unfollowW := httptest.NewRecorder()
	r.ServeHTTP(unfollowW, unfollowReq)

	assert.Equal(t, http.StatusOK, unfollowW.Code)

	following, err = models.IsFollowing(server.DB, follower.ID, followed.ID)
	if err != nil {
		t.Fatalf("Error checking follow edge: %v", err)
	}
	assert.False(t, following)

	server.DB.First(&followerRow, follower.ID)
	server.DB.First(&followedRow, followed.ID)
	assert.Equal(t, int64(0), followerRow.FollowingCount)
	assert.Equal(t, int64(0), followedRow.FollowersCount)
}

func TestFollowIsIdempotent(t *testing.T) {
	server := setupServer(t)

	follower := seedUser(t, server.DB, "follower")
	followed := seedUser(t, server.DB, "followed")

	r := gin.Default()
	r.Use(AuthMiddlewareForTests(follower.ID))
	r.POST("/api/v1/users/:id/follow", server.FollowUser)

	target := "/api/v1/users/" + strconv.Itoa(int(followed.ID)) + "/follow"

	firstReq, _ := http.NewRequest(http.MethodPost, target, nil)
	firstW := httptest.NewRecorder()
	r.ServeHTTP(firstW, firstReq)
	assert.Equal(t, http.StatusCreated, firstW.Code)

	secondReq, _ := http.NewRequest(http.MethodPost, target, nil)
	secondW := httptest.NewRecorder()
	r.ServeHTTP(secondW, secondReq)
	assert.Equal(t, http.StatusOK, secondW.Code)

	// Counters must not double-count the repeated follow
	var followedRow models.User
	server.DB.First(&followedRow, followed.ID)
	assert.Equal(t, int64(1), followedRow.FollowersCount)

	var edges int64
	server.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", follower.ID, followed.ID).
		Count(&edges)
	assert.Equal(t, int64(1), edges)
}

func TestSelfFollowRejected(t *testing.T) {
	server := setupServer(t)

	user := seedUser(t, server.DB, "loner")

	r := gin.Default()
	r.Use(AuthMiddlewareForTests(user.ID))
	r.POST("/api/v1/users/:id/follow", server.FollowUser)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/users/"+strconv.Itoa(int(user.ID))+"/follow", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var edges int64
	server.DB.Model(&models.Follow{}).Count(&edges)
	assert.Equal(t, int64(0), edges)
}

func TestUnfollowWithoutEdgeIsNoOp(t *testing.T) {
	server := setupServer(t)

	follower := seedUser(t, server.DB, "follower")
	followed := seedUser(t, server.DB, "followed")

	r := gin.Default()
	r.Use(AuthMiddlewareForTests(follower.ID))
	r.DELETE("/api/v1/users/:id/follow", server.UnfollowUser)

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/"+strconv.Itoa(int(followed.ID))+"/follow", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var followedRow models.User
	server.DB.First(&followedRow, followed.ID)
	assert.Equal(t, int64(0), followedRow.FollowersCount, "Counters must not go negative")
}

func TestGetFollowers(t *testing.T) {
	server := setupServer(t)

	popular := seedUser(t, server.DB, "popular")
	fanOne := seedUser(t, server.DB, "fanone")
	fanTwo := seedUser(t, server.DB, "fantwo")

	if _, err := models.FollowUser(server.DB, fanOne.ID, popular.ID); err != nil {
		t.Fatalf("Failed to seed follow: %v", err)
	}
	if _, err := models.FollowUser(server.DB, fanTwo.ID, popular.ID); err != nil {
		t.Fatalf("Failed to seed follow: %v", err)
	}

	r := gin.Default()
	r.GET("/api/v1/users/:id/followers", server.GetFollowers)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/"+strconv.Itoa(int(popular.ID))+"/followers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}
	response := responseBody["response"].(map[string]interface{})
	assert.Equal(t, float64(2), response["count"])

	users := response["users"].([]interface{})
	usernames := []string{}
	for _, u := range users {
		usernames = append(usernames, u.(map[string]interface{})["username"].(string))
	}
	assert.ElementsMatch(t, []string{"fanone", "fantwo"}, usernames)
}

func TestGetRelationship(t *testing.T) {
	server := setupServer(t)

	alice := seedUser(t, server.DB, "alice")
	bob := seedUser(t, server.DB, "bob")

	if _, err := models.FollowUser(server.DB, alice.ID, bob.ID); err != nil {
		t.Fatalf("Failed to seed follow: %v", err)
	}

	r := gin.Default()
	r.Use(AuthMiddlewareForTests(alice.ID))
	r.GET("/api/v1/users/:id/relationship", server.GetRelationship)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/"+strconv.Itoa(int(bob.ID))+"/relationship", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}
	assert.Equal(t, true, responseBody["following"])
	assert.Equal(t, false, responseBody["followed_by"])
	assert.Equal(t, false, responseBody["mutual"])
}
