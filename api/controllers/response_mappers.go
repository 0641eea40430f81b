package controllers

import (
	"github.com/caiocardoso28/flask-project/api/models"

	"gorm.io/gorm"
)

func userToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		PublicID:       user.PublicID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Username:       user.Username,
		Email:          user.Email,
		ImageFile:      user.ImageFile,
		FollowersCount: int(user.FollowersCount),
		FollowingCount: int(user.FollowingCount),
		CreatedAt:      user.CreatedAt,
	}
}

func userToSummaryDTO(user *models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        user.ID,
		Username:  user.Username,
		ImageFile: user.ImageFile,
	}
}

func commentToDTO(comment *models.Comment) CommentDTO {
	return CommentDTO{
		ID:         comment.ID,
		PostID:     comment.PostID,
		Author:     userToSummaryDTO(&comment.Author),
		Content:    comment.Content,
		DatePosted: comment.DatePosted,
	}
}

func likeToDTO(like *models.Like) LikeDTO {
	return LikeDTO{
		ID:        like.ID,
		PostID:    like.PostID,
		User:      userToSummaryDTO(&like.User),
		CreatedAt: like.CreatedAt,
	}
}

func notifToDTO(notif *models.Notif) NotifDTO {
	return NotifDTO{
		ID:         notif.ID,
		PostID:     notif.PostID,
		Msg:        notif.Msg,
		Author:     notif.Author,
		DatePosted: notif.DatePosted,
	}
}

// postToDTO hydrates the engagement counters the feed page renders next to
// each post. viewerID of zero means an anonymous reader.
func postToDTO(db *gorm.DB, post *models.Post, viewerID uint) (PostDTO, error) {
	likes, err := post.LikesCount(db)
	if err != nil {
		return PostDTO{}, err
	}
	comments, err := post.CommentsCount(db)
	if err != nil {
		return PostDTO{}, err
	}
	viewerLiked := false
	if viewerID != 0 {
		viewerLiked, err = models.UserLiked(db, post.ID, viewerID)
		if err != nil {
			return PostDTO{}, err
		}
	}
	return PostDTO{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Media:         post.Media,
		Author:        userToSummaryDTO(&post.Author),
		DatePosted:    post.DatePosted,
		TimeAgo:       post.TimeAgo,
		LikesCount:    likes,
		CommentsCount: comments,
		ViewerLiked:   viewerLiked,
	}, nil
}

func postsToDTOs(db *gorm.DB, posts []models.Post, viewerID uint) ([]PostDTO, error) {
	out := make([]PostDTO, 0, len(posts))
	for i := range posts {
		dto, err := postToDTO(db, &posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}
