package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Like toggle outcomes, consumed verbatim by the presentation layer.
const (
	LikeOutcomeLiked   = "liked"
	LikeOutcomeUnliked = "unliked"
)

type Like struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_unique" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_unique" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ToggleLike is the single entry point for like state: it adds the user to
// the post's liker set and reports "liked", or removes them and reports
// "unliked". The whole read-then-flip runs in one transaction so concurrent
// toggles on the same (post, user) pair cannot corrupt the set.
func ToggleLike(db *gorm.DB, postID, userID uint) (string, error) {
	outcome := ""
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Post{}, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var like Like
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).Take(&like).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			like = Like{PostID: postID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			outcome = LikeOutcomeLiked
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("id = ?", like.ID).Delete(&Like{}).Error; err != nil {
			return err
		}
		outcome = LikeOutcomeUnliked
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// UserLiked reports whether the user is in the post's liker set.
func UserLiked(db *gorm.DB, postID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *Like) GetLikesInfo(db *gorm.DB, pid uint) (*[]Like, error) {
	likes := []Like{}
	err := db.Preload("User").Where("post_id = ?", pid).Find(&likes).Error
	if err != nil {
		return &[]Like{}, err
	}
	return &likes, err
}

// When a user is deleted, we also delete the likes that the user had
func DeleteUserLikes(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// When a post is deleted, we also delete the likes that the post had
func DeletePostLikes(db *gorm.DB, pid uint) (int64, error) {
	result := db.Where("post_id = ?", pid).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
