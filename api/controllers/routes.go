package controllers

import (
	"github.com/caiocardoso28/flask-project/api/middlewares"
)

func (s *Server) initializeRoutes() {

	v1 := s.Router.Group("/api/v1")
	{
		// Users routes
		v1.POST("/login", middlewares.LoginRateLimitMiddleware(), s.Login)
		v1.POST("/users", s.CreateUser)
		v1.GET("/users", s.GetUsers)
		v1.GET("/users/:id", s.GetUser)
		v1.PUT("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateUser)
		v1.DELETE("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteUser)

		// Follow routes
		v1.POST("/users/:id/follow", middlewares.TokenAuthMiddleware(s.DB), s.FollowUser)
		v1.DELETE("/users/:id/follow", middlewares.TokenAuthMiddleware(s.DB), s.UnfollowUser)
		v1.GET("/users/:id/followers", s.GetFollowers)
		v1.GET("/users/:id/relationship", middlewares.TokenAuthMiddleware(s.DB), s.GetRelationship)

		// Feed and suggestions
		v1.GET("/feed", middlewares.TokenAuthMiddleware(s.DB), s.GetFeed)
		v1.GET("/suggestions", middlewares.TokenAuthMiddleware(s.DB), s.GetSuggestions)

		// Post routes
		v1.POST("/posts", middlewares.TokenAuthMiddleware(s.DB), s.CreatePost)
		v1.GET("/posts", s.GetPosts)
		v1.GET("/posts/:id", s.GetPost)
		v1.PUT("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdatePost)
		v1.DELETE("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeletePost)
		v1.GET("/users/:id/posts", s.GetUserPosts)

		// Like routes
		v1.POST("/posts/:id/like", middlewares.TokenAuthMiddleware(s.DB), s.ToggleLike)
		v1.GET("/posts/:id/likes", s.GetLikes)

		// Comments routes
		v1.POST("/posts/:id/comments", middlewares.TokenAuthMiddleware(s.DB), s.CreateComment)
		v1.GET("/posts/:id/comments", s.GetComments)

		// Notification routes
		v1.GET("/notifications/new", middlewares.TokenAuthMiddleware(s.DB), s.GetNewNotifications)
		v1.POST("/notifications/drain", middlewares.TokenAuthMiddleware(s.DB), s.DrainNotifications)
	}
}
