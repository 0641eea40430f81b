package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Comment is insert-only: created on a post, never mutated, removed only
// when the owning post is deleted.
type Comment struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	Author     User      `gorm:"foreignKey:UserID" json:"author"`
	Content    string    `gorm:"text;not null" json:"content"`
	DatePosted time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"date_posted"`
}

func (c *Comment) Prepare() {
	c.ID = 0
	c.Content = html.EscapeString(strings.TrimSpace(c.Content))
	c.Author = User{}
	c.DatePosted = time.Now()
}

func (c *Comment) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	if c.Content == "" {
		errorMessages["Required_content"] = "Content is required"
	}
	if c.UserID == 0 {
		errorMessages["Required_user"] = "User is required"
	}
	if c.PostID == 0 {
		errorMessages["Required_post"] = "Post is required"
	}
	return errorMessages
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	err := db.Create(&c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) GetComments(db *gorm.DB, pid uint) (*[]Comment, error) {
	comments := []Comment{}
	// Preload the comment author's information so the username is available
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("date_posted asc, id asc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &comments, nil
}

// LastComments returns the newest `limit` comments in insertion order, the
// window post pages render under each post.
func (c *Comment) LastComments(db *gorm.DB, pid uint, limit int) (*[]Comment, error) {
	if limit <= 0 {
		return &[]Comment{}, nil
	}
	comments := []Comment{}
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("date_posted desc, id desc").Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return &comments, nil
}

// When a user is deleted, we also delete the comments that the user had
func (c *Comment) DeleteUserComments(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// When a post is deleted, we also delete the comments that the post had
func (c *Comment) DeletePostComments(db *gorm.DB, pid uint) (int64, error) {
	result := db.Where("post_id = ?", pid).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
