package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/caiocardoso28/flask-project/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.POST("/api/v1/users", server.CreateUser)

	mockUser := map[string]string{
		"username": "testuser",
		"email":    "testuser@example.com",
		"password": "password123",
	}
	requestBody, err := json.Marshal(mockUser)
	if err != nil {
		t.Fatalf("Error creating request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBuffer(requestBody))
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var responseBody map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &responseBody)
	if err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}

	responseUser := responseBody["response"].(map[string]interface{})

	assert.Equal(t, mockUser["username"], responseUser["username"])
	assert.Equal(t, mockUser["email"], responseUser["email"])
	assert.NotEmpty(t, responseUser["public_id"], "Public ID should be assigned on creation")
	assert.Equal(t, "default.jpg", responseUser["image_file"])

	// Password should not be exposed in the response
	_, passwordExists := responseUser["password"]
	assert.False(t, passwordExists, "Password field should not be exposed in response")
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.POST("/api/v1/users", server.CreateUser)

	mockUser := map[string]string{
		"username": "testuser",
		"email":    "testuser@example.com",
		"password": "abc",
	}
	requestBody, _ := json.Marshal(mockUser)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetUserByID(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/api/v1/users/:id", server.GetUser)

	user := seedUser(t, server.DB, "testuser")
	seedPost(t, server.DB, user.ID, "First", "hello", user.CreatedAt)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/users/"+strconv.Itoa(int(user.ID)), nil)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	t.Logf("Response body: %s", w.Body.String())

	assert.Equal(t, http.StatusOK, w.Code)

	var responseBody map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &responseBody)
	if err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}

	response, ok := responseBody["response"].(map[string]interface{})
	if !ok {
		t.Fatalf("Error extracting 'response' from response body")
	}
	userData, ok := response["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Error extracting 'user' from response data")
	}

	assert.Equal(t, "testuser", userData["username"])
	assert.Equal(t, float64(1), response["post_count"])

	_, passwordExists := userData["password"]
	assert.False(t, passwordExists, "Password field should not be exposed in response")
}

func TestGetUserByUsername(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/api/v1/users/:id", server.GetUser)

	seedUser(t, server.DB, "testuser")

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/testuser", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}
	userData := responseBody["response"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "testuser", userData["username"])
}

func TestGetAllUsers(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.GET("/api/v1/users", server.GetUsers)

	seedUser(t, server.DB, "testuser1")
	seedUser(t, server.DB, "testuser2")

	req, err := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var responseBody map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &responseBody)
	if err != nil {
		t.Fatalf("Error unmarshalling response body: %v", err)
	}

	usersData, ok := responseBody["response"].([]interface{})
	if !ok {
		t.Fatalf("Error extracting 'response' field from response body")
	}

	assert.Equal(t, 2, len(usersData))

	for _, user := range usersData {
		userMap := user.(map[string]interface{})
		assert.NotEmpty(t, userMap["username"], "Username should be present in response")
		assert.NotEmpty(t, userMap["email"], "Email should be present in response")

		_, passwordExists := userMap["password"]
		assert.False(t, passwordExists, "Password field should not be exposed in response")
	}
}

func TestUpdateUser(t *testing.T) {
	server := setupServer(t)

	user := seedUser(t, server.DB, "testuser")

	authenticatedRouter := gin.Default()
	authenticatedRouter.Use(AuthMiddlewareForTests(user.ID))
	authenticatedRouter.PUT("/api/v1/users/:id", server.UpdateUser)

	updatedUser := map[string]string{
		"email": "updateduser@example.com",
	}
	updateRequestBody, err := json.Marshal(updatedUser)
	if err != nil {
		t.Fatalf("Error creating update request body: %v", err)
	}

	updateReq, err := http.NewRequest(http.MethodPut, "/api/v1/users/"+strconv.Itoa(int(user.ID)), bytes.NewBuffer(updateRequestBody))
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	updateReq.Header.Set("Content-Type", "application/json")

	updateW := httptest.NewRecorder()
	authenticatedRouter.ServeHTTP(updateW, updateReq)

	assert.Equal(t, http.StatusOK, updateW.Code)

	var updateResponseBody map[string]interface{}
	err = json.Unmarshal(updateW.Body.Bytes(), &updateResponseBody)
	if err != nil {
		t.Fatalf("Error unmarshalling update response body: %v", err)
	}

	updatedUserData, ok := updateResponseBody["response"].(map[string]interface{})
	if !ok {
		t.Fatalf("Error extracting 'response' from update user response body")
	}

	assert.Equal(t, updatedUser["email"], updatedUserData["email"])

	_, passwordExists := updatedUserData["password"]
	assert.False(t, passwordExists, "Password field should not be exposed in response")
}

func TestUpdateUserRejectsOtherAccount(t *testing.T) {
	server := setupServer(t)

	owner := seedUser(t, server.DB, "owner")
	intruder := seedUser(t, server.DB, "intruder")

	authenticatedRouter := gin.Default()
	authenticatedRouter.Use(AuthMiddlewareForTests(intruder.ID))
	authenticatedRouter.PUT("/api/v1/users/:id", server.UpdateUser)

	body, _ := json.Marshal(map[string]string{"email": "hijack@example.com"})
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/users/"+strconv.Itoa(int(owner.ID)), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	authenticatedRouter.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	server := setupServer(t)

	user := seedUser(t, server.DB, "testuser")
	other := seedUser(t, server.DB, "other")
	post := seedPost(t, server.DB, user.ID, "Mine", "content", user.CreatedAt)

	// Build up state that must disappear with the account: a follow edge,
	// a like and comment from the other user, and the notifications both
	// generated.
	if _, err := models.FollowUser(server.DB, other.ID, user.ID); err != nil {
		t.Fatalf("Failed to seed follow: %v", err)
	}
	if _, err := models.ToggleLike(server.DB, post.ID, other.ID); err != nil {
		t.Fatalf("Failed to seed like: %v", err)
	}
	if _, err := models.AddNotification(server.DB, other, post, "liked"); err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}

	authenticatedRouter := gin.Default()
	authenticatedRouter.Use(AuthMiddlewareForTests(user.ID))
	authenticatedRouter.DELETE("/api/v1/users/:id", server.DeleteUser)

	deleteReq, err := http.NewRequest(http.MethodDelete, "/api/v1/users/"+strconv.Itoa(int(user.ID)), nil)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}

	deleteW := httptest.NewRecorder()
	authenticatedRouter.ServeHTTP(deleteW, deleteReq)

	assert.Equal(t, http.StatusOK, deleteW.Code)

	var count int64
	server.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count, "User row should be gone")

	server.DB.Model(&models.Post{}).Where("author_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count, "User posts should be gone")

	server.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count, "Likes on the user's posts should be gone")

	server.DB.Model(&models.Follow{}).Where("follower_id = ? OR followed_id = ?", user.ID, user.ID).Count(&count)
	assert.Equal(t, int64(0), count, "Follow edges should be gone")

	server.DB.Model(&models.Notif{}).Where("for_user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count, "Notifications should be gone")

	// The follower's counter must be rebalanced
	var follower models.User
	server.DB.First(&follower, other.ID)
	assert.Equal(t, int64(0), follower.FollowingCount)
}
