package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	server := setupServer(t)

	seedUser(t, server.DB, "testuser")

	r := gin.Default()
	r.POST("/api/v1/login", server.Login)

	loginPayload := map[string]string{
		"email":    "testuser@example.com",
		"password": "password123",
	}
	requestBody, err := json.Marshal(loginPayload)
	if err != nil {
		t.Fatalf("Error creating login request body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBuffer(requestBody))
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	t.Logf("Response body: %s", w.Body.String())

	assert.Equal(t, http.StatusOK, w.Code)

	var responseBody map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &responseBody)
	if err != nil {
		t.Fatalf("Error unmarshalling login response body: %v", err)
	}

	response := responseBody["response"].(map[string]interface{})
	assert.NotEmpty(t, response["token"], "Login should return a token")
	assert.Equal(t, "testuser", response["username"])
	assert.NotEmpty(t, response["public_id"])

	_, passwordExists := response["password"]
	assert.False(t, passwordExists, "Password field should not be exposed in response")
}

func TestLoginWrongPassword(t *testing.T) {
	server := setupServer(t)

	seedUser(t, server.DB, "testuser")

	r := gin.Default()
	r.POST("/api/v1/login", server.Login)

	requestBody, _ := json.Marshal(map[string]string{
		"email":    "testuser@example.com",
		"password": "not-the-password",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
