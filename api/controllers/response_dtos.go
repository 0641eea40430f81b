package controllers

import "time"

type UserDTO struct {
	ID             uint      `json:"id"`
	PublicID       string    `json:"public_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ImageFile      string    `json:"image_file"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserSummaryDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	ImageFile string `json:"image_file"`
}

type CommentDTO struct {
	ID         uint           `json:"id"`
	PostID     uint           `json:"post_id"`
	Author     UserSummaryDTO `json:"author"`
	Content    string         `json:"content"`
	DatePosted time.Time      `json:"date_posted"`
}

type PostDTO struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Media         string         `json:"media,omitempty"`
	Author        UserSummaryDTO `json:"author"`
	DatePosted    time.Time      `json:"date_posted"`
	TimeAgo       string         `json:"time_ago"`
	LikesCount    int64          `json:"likes_count"`
	CommentsCount int64          `json:"comments_count"`
	ViewerLiked   bool           `json:"viewer_liked"`
}

type LikeDTO struct {
	ID        uint           `json:"id"`
	PostID    uint           `json:"post_id"`
	User      UserSummaryDTO `json:"user"`
	CreatedAt time.Time      `json:"created_at"`
}

type NotifDTO struct {
	ID         uint      `json:"id"`
	PostID     uint      `json:"post_id"`
	Msg        string    `json:"msg"`
	Author     string    `json:"author"`
	DatePosted time.Time `json:"date_posted"`
}
