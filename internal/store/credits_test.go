package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"prism/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCredits(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := newTestUser(t, s, "alice")

	user, err := s.AddCredits(ctx, alice.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 1500, user.Credits)
	assert.Equal(t, 500, user.TotalEarnings)

	_, err = s.AddCredits(ctx, alice.ID, 0)
	assert.True(t, models.IsInvalidOperation(err))
	_, err = s.AddCredits(ctx, alice.ID, -100)
	assert.True(t, models.IsInvalidOperation(err))
	_, err = s.AddCredits(ctx, 999, 100)
	assert.True(t, models.IsNotFound(err))
}

func TestSpendCredits(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := newTestUser(t, s, "alice") // 1000 credits

	assert.True(t, s.SpendCredits(ctx, alice.ID, 400))
	assert.False(t, s.SpendCredits(ctx, alice.ID, 700))
	assert.False(t, s.SpendCredits(ctx, alice.ID, -1))
	assert.False(t, s.SpendCredits(ctx, 999, 1))

	now, _ := s.GetUserByID(ctx, alice.ID)
	assert.Equal(t, 600, now.Credits)
}

func TestSpendCredits_ConcurrentNeverNegative(t *testing.T) {
	s := New()
	ctx := context.Background()

	alice := newTestUser(t, s, "alice") // 1000 credits

	// 50 goroutines each try to spend 100: exactly 10 can succeed.
	const spenders = 50
	const amount = 100

	var succeeded int64
	var wg sync.WaitGroup
	for i := 0; i < spenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.SpendCredits(ctx, alice.ID, amount) {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), atomic.LoadInt64(&succeeded))

	now, _ := s.GetUserByID(ctx, alice.ID)
	assert.Equal(t, 0, now.Credits)
	assert.GreaterOrEqual(t, now.Credits, 0)
}

func TestPurchaseMedia_Scenario(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Buyer has 1250 credits; seller has 890, 15 trades completed.
	buyer, err := s.CreateUser(ctx, CreateUserInput{
		Name: "Buyer", Username: "buyer", Email: "buyer@example.com", Credits: 1250,
	})
	require.NoError(t, err)
	seller, err := s.CreateUser(ctx, CreateUserInput{
		Name: "Seller", Username: "seller", Email: "seller@example.com",
		Credits: 890, TotalEarnings: 3200, TradesCompleted: 15,
	})
	require.NoError(t, err)

	post, err := s.CreatePost(ctx, seller.ID, "for sale",
		models.ImageMedia("https://img.example.com/1"), models.ForSale(200))
	require.NoError(t, err)

	require.True(t, s.PurchaseMedia(ctx, post.ID, buyer.ID))

	buyerNow, _ := s.GetUserByID(ctx, buyer.ID)
	sellerNow, _ := s.GetUserByID(ctx, seller.ID)
	postNow, _ := s.GetPostByID(ctx, post.ID)

	assert.Equal(t, 1050, buyerNow.Credits)
	assert.Equal(t, 1090, sellerNow.Credits)
	assert.Equal(t, 3400, sellerNow.TotalEarnings)
	assert.Equal(t, 16, sellerNow.TradesCompleted)
	assert.Equal(t, 1, postNow.Downloads)
}

func TestPurchaseMedia_Failures(t *testing.T) {
	s := New()
	ctx := context.Background()

	buyer := newTestUser(t, s, "buyer")   // 1000 credits
	seller := newTestUser(t, s, "seller") // 1000 credits

	notForSale, err := s.CreatePost(ctx, seller.ID, "not for sale",
		models.ImageMedia("https://img.example.com/1"), models.NotForSale())
	require.NoError(t, err)
	expensive, err := s.CreatePost(ctx, seller.ID, "too expensive",
		models.ImageMedia("https://img.example.com/2"), models.ForSale(5000))
	require.NoError(t, err)
	own, err := s.CreatePost(ctx, buyer.ID, "own post",
		models.ImageMedia("https://img.example.com/3"), models.ForSale(100))
	require.NoError(t, err)

	assert.False(t, s.PurchaseMedia(ctx, 999, buyer.ID), "absent post")
	assert.False(t, s.PurchaseMedia(ctx, notForSale.ID, buyer.ID), "not for sale")
	assert.False(t, s.PurchaseMedia(ctx, expensive.ID, buyer.ID), "insufficient funds")
	assert.False(t, s.PurchaseMedia(ctx, own.ID, buyer.ID), "self purchase")
	assert.False(t, s.PurchaseMedia(ctx, notForSale.ID, 999), "absent buyer")

	// No mutation on any failure path.
	buyerNow, _ := s.GetUserByID(ctx, buyer.ID)
	sellerNow, _ := s.GetUserByID(ctx, seller.ID)
	assert.Equal(t, 1000, buyerNow.Credits)
	assert.Equal(t, 1000, sellerNow.Credits)
	assert.Equal(t, 0, sellerNow.TradesCompleted)

	for _, id := range []uint{notForSale.ID, expensive.ID, own.ID} {
		post, err := s.GetPostByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, post.Downloads)
	}
}

func TestPurchaseMedia_ConcurrentNoDoubleSpend(t *testing.T) {
	s := New()
	ctx := context.Background()

	buyer, err := s.CreateUser(ctx, CreateUserInput{
		Name: "Buyer", Username: "buyer", Email: "buyer@example.com", Credits: 500,
	})
	require.NoError(t, err)
	seller := newTestUser(t, s, "seller")

	// Two posts at 300 each: the 500 balance affords exactly one.
	posts := make([]*models.Post, 2)
	for i := range posts {
		posts[i], err = s.CreatePost(ctx, seller.ID, fmt.Sprintf("sale %d", i),
			models.ImageMedia(fmt.Sprintf("https://img.example.com/%d", i)), models.ForSale(300))
		require.NoError(t, err)
	}

	var succeeded int64
	var wg sync.WaitGroup
	for _, post := range posts {
		wg.Add(1)
		go func(postID uint) {
			defer wg.Done()
			if s.PurchaseMedia(ctx, postID, buyer.ID) {
				atomic.AddInt64(&succeeded, 1)
			}
		}(post.ID)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&succeeded))

	buyerNow, _ := s.GetUserByID(ctx, buyer.ID)
	sellerNow, _ := s.GetUserByID(ctx, seller.ID)
	assert.Equal(t, 200, buyerNow.Credits)
	assert.Equal(t, 1300, sellerNow.Credits)
	assert.Equal(t, 1, sellerNow.TradesCompleted)
}
