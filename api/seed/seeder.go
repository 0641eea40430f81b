package seed

import (
	"log"
	"time"

	"github.com/caiocardoso28/flask-project/api/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		FirstName: "Steven",
		LastName:  "Victor",
		Username:  "steven",
		Email:     "steven@example.com",
		Password:  "password",
	},
	{
		FirstName: "Martin",
		LastName:  "Luther",
		Username:  "martin",
		Email:     "luther@example.com",
		Password:  "password",
	},
	{
		FirstName: "Kenny",
		LastName:  "Morris",
		Username:  "kenny",
		Email:     "kenny@example.com",
		Password:  "password",
	},
}

var posts = []models.Post{
	{
		Title:   "Hello world",
		Content: "First post on the network. Glad to be here.",
	},
	{
		Title:   "Weekend plans",
		Content: "Thinking about a hiking trip, anyone interested?",
	},
	{
		Title:   "Reading list",
		Content: "Just finished a great book on distributed systems.",
	},
}

// Load wipes and repopulates the database with demo users, posts and
// follow edges. Intended for local development only.
func Load(db *gorm.DB) {
	err := db.Migrator().DropTable(
		&models.Notif{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("cannot drop tables: %v", err)
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
		log.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range users {
		users[i].Prepare()
		if err = db.Create(&users[i]).Error; err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}

		posts[i].AuthorID = users[i].ID
		posts[i].DatePosted = time.Now().Add(time.Duration(i) * time.Minute)
		if err = db.Create(&posts[i]).Error; err != nil {
			log.Fatalf("cannot seed posts table: %v", err)
		}
	}

	// steven follows martin and kenny, martin follows steven.
	if _, err = models.FollowUser(db, users[0].ID, users[1].ID); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
	if _, err = models.FollowUser(db, users[0].ID, users[2].ID); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
	if _, err = models.FollowUser(db, users[1].ID, users[0].ID); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
}
