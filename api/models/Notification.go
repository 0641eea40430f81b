package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// recentWindowSize is the fixed page size DrainRecent serves from the seen
// part of the ledger. Policy constant, not user-configurable.
const recentWindowSize = 4

// Notif is one append-only ledger entry. Entries are addressed to the
// author of the post they concern and ordered by insertion (ascending ID).
type Notif struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	ForUserID  uint      `gorm:"not null;index" json:"for_user_id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	Msg        string    `gorm:"size:50;not null" json:"msg"`
	Author     string    `gorm:"size:255;not null" json:"author"`
	DatePosted time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"date_posted"`
}

func (Notif) TableName() string {
	return "notifs"
}

// AddNotification appends an entry to the ledger of the post's author. The
// actor only lends their display name; the recipient is always the author.
func AddNotification(db *gorm.DB, actor *User, post *Post, kind string) (*Notif, error) {
	notif := Notif{
		ForUserID: post.AuthorID,
		PostID:    post.ID,
		Msg:       kind,
		Author:    actor.Username,
	}
	if notif.DatePosted.IsZero() {
		notif.DatePosted = time.Now()
	}
	if err := db.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// HasNewNotifications reports whether the ledger has grown past the user's
// cursor. Read-only: useful for rendering a "new" badge without consuming
// anything.
func HasNewNotifications(db *gorm.DB, uid uint) (bool, error) {
	length, cursor, err := ledgerState(db, uid)
	if err != nil {
		return false, err
	}
	return length > cursor, nil
}

// PeekNewNotifications returns the entries added since the cursor, newest
// first, without advancing the cursor.
func PeekNewNotifications(db *gorm.DB, uid uint) ([]Notif, error) {
	var notifs []Notif
	err := db.Transaction(func(tx *gorm.DB) error {
		ledger, cursor, err := loadLedger(tx, uid)
		if err != nil {
			return err
		}
		notifs = newWindow(ledger, cursor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notifs, nil
}

// DrainRecentNotifications marks every pending entry as seen and returns a
// page of up to four older entries, newest first. With no pending entries
// that page is simply the newest four overall; otherwise it is the slice of
// the ledger between position length-4 and the old cursor — the "next page"
// behind whatever the caller just peeked. The read and the cursor advance
// are one transaction, so concurrent drains serialize per user.
func DrainRecentNotifications(db *gorm.DB, uid uint) ([]Notif, error) {
	var notifs []Notif
	err := db.Transaction(func(tx *gorm.DB) error {
		ledger, cursor, err := loadLedger(tx, uid)
		if err != nil {
			return err
		}
		notifs = recentWindow(ledger, cursor)
		return tx.Model(&User{}).
			Where("id = ?", uid).
			UpdateColumn("notif_count", len(ledger)).Error
	})
	if err != nil {
		return nil, err
	}
	return notifs, nil
}

// When a post is deleted, we also delete the notifications it generated
func DeletePostNotifications(db *gorm.DB, pid uint) (int64, error) {
	result := db.Where("post_id = ?", pid).Delete(&Notif{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func ledgerState(db *gorm.DB, uid uint) (length, cursor int, err error) {
	var user User
	if err = db.Select("id", "notif_count").First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrUserNotFound
		}
		return 0, 0, err
	}
	var count int64
	if err = db.Model(&Notif{}).Where("for_user_id = ?", uid).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	return int(count), user.NotifCount, nil
}

func loadLedger(db *gorm.DB, uid uint) ([]Notif, int, error) {
	var user User
	if err := db.Select("id", "notif_count").First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	var ledger []Notif
	if err := db.Where("for_user_id = ?", uid).
		Order("id asc").
		Find(&ledger).Error; err != nil {
		return nil, 0, err
	}
	return ledger, user.NotifCount, nil
}

// newWindow slices out everything past the cursor, newest first.
func newWindow(ledger []Notif, cursor int) []Notif {
	cursor = clampCursor(ledger, cursor)
	return reverseNotifs(ledger[cursor:])
}

// recentWindow slices out ledger[max(0, n-4):cursor], newest first. With no
// pending entries (cursor == n) that is the last four overall; with pending
// entries it is the up-to-four seen entries right behind them. Never pads:
// a short ledger just yields fewer.
func recentWindow(ledger []Notif, cursor int) []Notif {
	cursor = clampCursor(ledger, cursor)
	start := len(ledger) - recentWindowSize
	if start < 0 {
		start = 0
	}
	if cursor < start {
		return []Notif{}
	}
	return reverseNotifs(ledger[start:cursor])
}

// clampCursor bounds the cursor to the ledger. The cursor can overshoot
// after a post deletion cascaded away entries it once counted.
func clampCursor(ledger []Notif, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(ledger) {
		return len(ledger)
	}
	return cursor
}

func reverseNotifs(window []Notif) []Notif {
	out := make([]Notif, len(window))
	for i, n := range window {
		out[len(window)-1-i] = n
	}
	return out
}
