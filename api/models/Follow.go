package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow is a directed edge in the social graph: follower -> followed.
// Edges live in their own table rather than an embedded object graph; the
// composite unique index rules out duplicate edges and the base setup adds
// a CHECK against self-follows on backends that support it.
type Follow struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_follower_created,priority:1" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_followed_created,priority:1" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_follows_followed_created,priority:2;index:idx_follows_follower_created,priority:2" json:"created_at"`
}

// FollowUser adds the edge follower -> followed. Self-follows and existing
// edges are silent no-ops; the returned bool reports whether a new edge was
// created so callers can keep counters honest.
func FollowUser(db *gorm.DB, followerID, followedID uint) (bool, error) {
	if followerID == followedID {
		return false, nil
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		follow := Follow{
			FollowerID: followerID,
			FollowedID: followedID,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		created = true

		if err := tx.Model(&User{}).
			Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&User{}).
			Where("id = ?", followedID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
	return created, err
}

// UnfollowUser removes the edge follower -> followed; a missing edge is a
// no-op.
func UnfollowUser(db *gorm.DB, followerID, followedID uint) (bool, error) {
	removed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Delete(&Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true

		if err := tx.Model(&User{}).
			Where("id = ? AND following_count > 0", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&User{}).
			Where("id = ? AND followers_count > 0", followedID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
	})
	return removed, err
}

// IsFollowing reports whether the edge follower -> followed exists.
func IsFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowersOf returns the users with an edge pointing at the given user.
func FollowersOf(db *gorm.DB, followedID uint) ([]User, error) {
	var followers []User
	err := db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", followedID).
		Order("follows.created_at DESC, follows.id DESC").
		Find(&followers).Error
	if err != nil {
		return nil, err
	}
	return followers, nil
}

// RemoveUserFollowEdges drops every edge touching a user and rebalances the
// counters on the other side of each edge. Used by account deletion.
func RemoveUserFollowEdges(tx *gorm.DB, userID uint) error {
	if err := tx.Exec(
		"UPDATE users SET followers_count = followers_count - 1 WHERE followers_count > 0 AND id IN (SELECT followed_id FROM follows WHERE follower_id = ?)",
		userID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"UPDATE users SET following_count = following_count - 1 WHERE following_count > 0 AND id IN (SELECT follower_id FROM follows WHERE followed_id = ?)",
		userID,
	).Error; err != nil {
		return err
	}
	return tx.Where("follower_id = ? OR followed_id = ?", userID, userID).
		Delete(&Follow{}).Error
}
