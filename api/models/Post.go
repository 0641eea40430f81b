package models

import (
	"errors"
	"html"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"gorm.io/gorm"
)

type Post struct {
	ID       uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Content  string `gorm:"text;not null" json:"content"`
	// Media is an opaque reference handed over by the media collaborator
	// (already stored); nothing here interprets it.
	Media      string    `gorm:"size:255" json:"media,omitempty"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Comments   []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	DatePosted time.Time `gorm:"not null;index;default:CURRENT_TIMESTAMP" json:"date_posted"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	TimeAgo string `gorm:"-" json:"time_ago,omitempty"`
}

func (p *Post) AfterFind(tx *gorm.DB) (err error) {
	if !p.DatePosted.IsZero() {
		p.TimeAgo = humanize.Time(p.DatePosted)
	}
	return nil
}

func (p *Post) Prepare() {
	p.Title = html.EscapeString(strings.TrimSpace(p.Title))
	p.Content = html.EscapeString(strings.TrimSpace(p.Content))
	p.Media = strings.TrimSpace(p.Media)
	p.Author = User{}
	if p.DatePosted.IsZero() {
		p.DatePosted = time.Now()
	}
	p.UpdatedAt = time.Now()
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Content == "" {
		errorMessages["Required_content"] = "Required Content"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Required Author"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	if err := db.Model(p).Association("Author").Find(&p.Author); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindAllPosts(db *gorm.DB) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").
		Order("date_posted DESC, id ASC").
		Limit(100).
		Find(&posts).Error
	if err != nil {
		return []Post{}, err
	}
	return posts, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Preload("Author").Where("id = ?", pid).Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (p *Post) FindUserPosts(db *gorm.DB, uid uint) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").
		Where("author_id = ?", uid).
		Order("date_posted DESC, id ASC").
		Find(&posts).Error
	if err != nil {
		return []Post{}, err
	}
	return posts, nil
}

// FindFeedPosts composes the feed for a user: their own posts plus posts by
// everyone they follow, most recent first. Ties on the timestamp keep
// insertion order. This is a live query, recomposed on every request.
func FindFeedPosts(db *gorm.DB, uid uint) ([]Post, error) {
	posts := []Post{}
	err := db.Preload("Author").
		Where(
			"author_id = ? OR author_id IN (?)",
			uid,
			db.Table("follows").Select("followed_id").Where("follower_id = ?", uid),
		).
		Order("date_posted DESC, id ASC").
		Find(&posts).Error
	if err != nil {
		return []Post{}, err
	}
	return posts, nil
}

func (p *Post) UpdateAPost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":      p.Title,
		"content":    p.Content,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}

// DeleteAPost removes a post together with everything it owns: comments,
// likes, and the notifications it generated. One transaction, so a failed
// cascade leaves the post in place.
func (p *Post) DeleteAPost(db *gorm.DB, pid uint) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		comment := Comment{}
		if _, err := comment.DeletePostComments(tx, pid); err != nil {
			return err
		}
		if _, err := DeletePostLikes(tx, pid); err != nil {
			return err
		}
		if _, err := DeletePostNotifications(tx, pid); err != nil {
			return err
		}
		result := tx.Where("id = ?", pid).Delete(&Post{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (p *Post) LikesCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Like{}).Where("post_id = ?", p.ID).Count(&count).Error
	return count, err
}

func (p *Post) CommentsCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Comment{}).Where("post_id = ?", p.ID).Count(&count).Error
	return count, err
}
