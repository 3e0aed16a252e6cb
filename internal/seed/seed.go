// Package seed provides helpers to create demo and test data for the
// in-memory entity store. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"prism/internal/models"
	"prism/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options configuration for the seeder
type Options struct {
	// RandomUsers is the number of randomized accounts created on top of
	// the built-in demo accounts.
	RandomUsers int
	// RandomPosts is the number of randomized posts spread across all
	// accounts.
	RandomPosts int
	// Seed fixes the random source for reproducible data. Zero means
	// non-deterministic.
	Seed int64
}

// Factory builds domain entities through the entity store.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	store *store.Store
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewFactory creates a new Factory bound to the provided store.
func NewFactory(s *store.Store, opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = gofakeit.New(0).Int64()
	}
	return &Factory{
		store: s,
		rng:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(seed),
	}
}

// CreateUser persists a randomized account with a starting credit balance.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*store.CreateUserInput)) (*models.User, error) {
	name := f.faker.Name()
	in := store.CreateUserInput{
		Name:       name,
		Username:   f.faker.Username(),
		Email:      f.faker.Email(),
		Bio:        f.faker.Sentence(8),
		Avatar:     fmt.Sprintf("https://picsum.photos/seed/%s/150/150", uuid.NewString()),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", uuid.NewString()),
		Location:   fmt.Sprintf("%s, %s", f.faker.City(), f.faker.StateAbr()),
		Verified:   f.rng.Intn(4) == 0,
		Credits:    100 + f.rng.Intn(2000),
	}
	for _, override := range overrides {
		override(&in)
	}
	return f.store.CreateUser(ctx, in)
}

// CreatePost persists a randomized post for user. Roughly half the posts
// carry media and a third of those are listed for sale.
func (f *Factory) CreatePost(ctx context.Context, user *models.User, overrides ...func(*string, *models.Media, *models.Listing)) (*models.Post, error) {
	content := f.faker.Paragraph(1, 3, 8, "\n")
	media := models.NoMedia()
	listing := models.NotForSale()

	switch f.rng.Intn(4) {
	case 0, 1:
		media = models.ImageMedia(fmt.Sprintf("https://picsum.photos/seed/%s/800/400", uuid.NewString()))
	case 2:
		media = models.VideoMedia(fmt.Sprintf("https://videos.example.com/%s.mp4", uuid.NewString()))
	}
	if media.Present() && f.rng.Intn(3) == 0 {
		listing = models.ForSale(50 + 50*f.rng.Intn(20))
	}

	for _, override := range overrides {
		override(&content, &media, &listing)
	}
	return f.store.CreatePost(ctx, user.ID, content, media, listing)
}

// Run seeds the built-in demo accounts and posts, then the requested
// amount of randomized filler, and finally a mesh of likes and follows so
// counters reflect real edges.
func Run(ctx context.Context, s *store.Store, opts Options) error {
	f := NewFactory(s, opts)

	users, err := demoAccounts(ctx, s)
	if err != nil {
		return fmt.Errorf("seed demo accounts: %w", err)
	}
	if err := demoPosts(ctx, s, users); err != nil {
		return fmt.Errorf("seed demo posts: %w", err)
	}

	for i := 0; i < opts.RandomUsers; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seed random user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.RandomPosts; i++ {
		owner := users[f.rng.Intn(len(users))]
		if _, err := f.CreatePost(ctx, owner); err != nil {
			return fmt.Errorf("seed random post: %w", err)
		}
	}

	if err := f.socialMesh(ctx, users); err != nil {
		return fmt.Errorf("seed social mesh: %w", err)
	}

	log.Printf("seeded %d users and %d posts", len(users), len(s.GetAllPosts(ctx)))
	return nil
}

// socialMesh toggles a random spread of likes and follows across the
// seeded accounts. Counters stay consistent because only store toggles
// mutate them.
func (f *Factory) socialMesh(ctx context.Context, users []*models.User) error {
	posts := f.store.GetAllPosts(ctx)

	for _, user := range users {
		for _, post := range posts {
			if post.UserID == user.ID || f.rng.Intn(3) != 0 {
				continue
			}
			if _, _, err := f.store.ToggleLike(ctx, post.ID, user.ID); err != nil {
				return err
			}
		}
		for _, other := range users {
			if other.ID == user.ID || f.rng.Intn(4) != 0 {
				continue
			}
			if _, _, err := f.store.ToggleFollow(ctx, user.ID, other.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
