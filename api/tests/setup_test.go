package tests

import (
	"testing"
	"time"

	"github.com/caiocardoso28/flask-project/api/controllers"
	"github.com/caiocardoso28/flask-project/api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthMiddlewareForTests simulates an authenticated user by setting userID in the context
func AuthMiddlewareForTests(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// setupServer opens an in-memory SQLite database with the full schema and
// returns a server bound to it.
func setupServer(t *testing.T) *controllers.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notif{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}
	return &controllers.Server{DB: db}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	user.Prepare()
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %q: %v", username, err)
	}
	return &user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title, content string, postedAt time.Time) *models.Post {
	t.Helper()
	post := models.Post{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		DatePosted: postedAt,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to seed post %q: %v", title, err)
	}
	return &post
}
