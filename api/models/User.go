package models

import (
	"errors"
	"html"
	"math/rand"
	"strings"
	"time"

	"github.com/caiocardoso28/flask-project/api/security"

	"github.com/badoux/checkmail"
	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uint   `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID       string `gorm:"type:uuid;uniqueIndex;column:public_id" json:"public_id"`
	FirstName      string `gorm:"size:50;not null" json:"first_name"`
	LastName       string `gorm:"size:50;not null" json:"last_name"`
	Username       string `gorm:"size:255;not null;unique" json:"username"`
	Email          string `gorm:"size:100;not null;unique" json:"email"`
	Password       string `gorm:"size:255;not null" json:"password,omitempty"`
	ImageFile      string `gorm:"size:255;not null;default:'default.jpg'" json:"image_file"`
	FollowersCount int64  `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int64  `gorm:"not null;default:0" json:"following_count"`
	// NotifCount is the notification cursor: ledger entries past it are
	// "new". It only ever advances (DrainRecent), never rewinds.
	NotifCount int       `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	return u.HashPassword()
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(u.PublicID) == "" {
		u.PublicID = uuid.NewV4().String()
	}
	return nil
}

func (u *User) Prepare() {
	u.FirstName = html.EscapeString(strings.TrimSpace(u.FirstName))
	u.LastName = html.EscapeString(strings.TrimSpace(u.LastName))
	u.Username = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Username)))
	u.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Email)))
	if u.ImageFile == "" {
		u.ImageFile = "default.jpg"
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "update":
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}

	case "login":
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	default:
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		if u.Password != "" && len(u.Password) < 6 {
			errorMessages["Invalid_password"] = "Password should be at least 6 characters"
		}
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	}
	return errorMessages
}

func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	err := db.Create(&u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) FindAllUsers(db *gorm.DB) (*[]User, error) {
	var users []User
	err := db.Limit(100).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	err := db.Where("id = ?", uid).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *User) UpdateAUser(db *gorm.DB, uid uint) (*User, error) {
	if u.Password != "" {
		if err := u.HashPassword(); err != nil {
			return nil, err
		}
	}

	columns := map[string]interface{}{
		"email":      u.Email,
		"updated_at": time.Now(),
	}
	if u.Password != "" {
		columns["password"] = u.Password
	}
	if u.FirstName != "" {
		columns["first_name"] = u.FirstName
	}
	if u.LastName != "" {
		columns["last_name"] = u.LastName
	}
	if u.Username != "" {
		columns["username"] = u.Username
	}
	if u.ImageFile != "" {
		columns["image_file"] = u.ImageFile
	}

	err := db.Model(&User{}).Where("id = ?", uid).Updates(columns).Error
	if err != nil {
		return nil, err
	}

	// Display the updated user
	err = db.Where("id = ?", uid).Take(&u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) DeleteAUser(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("id = ?", uid).Delete(&User{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (u *User) PostCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Post{}).Where("author_id = ?", u.ID).Count(&count).Error
	return count, err
}

// SuggestUsers returns up to two users the given user does not already
// follow, never including the user themselves. With more than two
// candidates the pair is drawn uniformly without replacement.
func (u *User) SuggestUsers(db *gorm.DB, uid uint) ([]User, error) {
	var candidates []User
	err := db.
		Where("id <> ?", uid).
		Where("id NOT IN (?)", db.Table("follows").Select("followed_id").Where("follower_id = ?", uid)).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return sampleUsers(candidates, 2), nil
}

// sampleUsers picks up to n distinct users via a partial Fisher-Yates
// shuffle, so it terminates no matter how small the pool is. The slice is
// reordered in place. The top-level math/rand functions are safe for
// concurrent callers.
func sampleUsers(candidates []User, n int) []User {
	if len(candidates) <= n {
		return candidates
	}
	for i := 0; i < n; i++ {
		j := i + rand.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:n]
}
