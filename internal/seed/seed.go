package seed

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/sevensfive/DevHub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	DryRun      bool
	MaxDays     int
}

// Seed populates the database with test data: users with profiles, posts,
// and a spread of likes and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
		users = append(users, user)

		// Roughly two thirds of users fill out a developer profile.
		if rand.Intn(3) != 0 {
			if _, err := f.CreateProfile(user); err != nil {
				return fmt.Errorf("seeding profiles: %w", err)
			}
		}
	}
	log.Printf("👤 Created %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		posts = append(posts, f.BuildPost(author))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("📝 Created %d posts", len(posts))

	likes, comments, err := seedEngagement(db, f, users, posts, opts)
	if err != nil {
		return fmt.Errorf("seeding engagement: %w", err)
	}
	log.Printf("❤️  Created %d likes and %d comments", likes, comments)

	log.Println("✅ Seeding complete")
	return nil
}

// seedEngagement distributes likes and comments over the posts. A user never
// likes the same post twice; the unique index enforces the same rule at the
// database level.
func seedEngagement(db *gorm.DB, f *Factory, users []*models.User, posts []*models.Post, opts Options) (int, int, error) {
	totalLikes := 0
	totalComments := 0

	for _, post := range posts {
		numLikes := rand.Intn(len(users)/2 + 1)
		perm := rand.Perm(len(users))
		for _, idx := range perm[:numLikes] {
			like := &models.Like{
				UserID: users[idx].ID,
				PostID: post.ID,
			}
			if opts.DryRun {
				totalLikes++
				continue
			}
			if err := db.Create(like).Error; err != nil {
				return totalLikes, totalComments, err
			}
			totalLikes++
		}

		numComments := rand.Intn(6)
		for i := 0; i < numComments; i++ {
			commenter := users[rand.Intn(len(users))]
			if _, err := f.CreateComment(commenter, post); err != nil {
				return totalLikes, totalComments, err
			}
			totalComments++
		}
	}

	return totalLikes, totalComments, nil
}

// clearData removes all seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{"comments", "likes", "posts", "profiles", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
