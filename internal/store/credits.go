package store

import (
	"context"

	"prism/internal/models"
	"prism/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// AddCredits grants amount to the user, raising both Credits and
// TotalEarnings. Non-positive amounts are rejected.
func (s *Store) AddCredits(ctx context.Context, userID uint, amount int) (*models.User, error) {
	ctx, span := observability.StartSpan(ctx, "store.AddCredits",
		attribute.Int("user_id", int(userID)),
		attribute.Int("amount", amount))
	defer span.End()

	if amount <= 0 {
		observability.StoreOperationErrors.WithLabelValues("credits", "add", models.CodeInvalidOperation).Inc()
		return nil, models.NewInvalidOperationError("credit amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		observability.StoreOperationErrors.WithLabelValues("credits", "add", models.CodeNotFound).Inc()
		return nil, models.NewNotFoundError("User", userID)
	}

	user.Credits += amount
	user.TotalEarnings += amount

	observability.StoreOperationsTotal.WithLabelValues("credits", "add").Inc()
	observability.CreditsTransferred.WithLabelValues("grant").Add(float64(amount))
	s.userLog.LogUpdate(ctx, map[string]interface{}{"user_id": userID, "credits_added": amount})

	return copyUser(user), nil
}

// SpendCredits debits amount from the user when the balance covers it.
// The check and the debit run under the store lock, so racing spenders
// can never drive the balance negative: exactly the attempts whose
// cumulative amount fits the balance succeed.
func (s *Store) SpendCredits(ctx context.Context, userID uint, amount int) bool {
	ctx, span := observability.StartSpan(ctx, "store.SpendCredits",
		attribute.Int("user_id", int(userID)),
		attribute.Int("amount", amount))
	defer span.End()

	if amount <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok || user.Credits < amount {
		return false
	}

	user.Credits -= amount

	observability.StoreOperationsTotal.WithLabelValues("credits", "spend").Inc()
	observability.CreditsTransferred.WithLabelValues("spend").Add(float64(amount))
	s.userLog.LogUpdate(ctx, map[string]interface{}{"user_id": userID, "credits_spent": amount})

	return true
}

// PurchaseMedia transfers the asking price from buyer to seller and
// records the trade. The whole operation is all-or-nothing under the store
// lock: a racing second purchase observes either the pre- or
// post-transaction balance, never an intermediate one. Fails without
// mutation when the post is absent or not for sale, either party is
// absent, the buyer owns the post, or the balance is insufficient.
func (s *Store) PurchaseMedia(ctx context.Context, postID, buyerID uint) bool {
	ctx, span := observability.StartSpan(ctx, "store.PurchaseMedia",
		attribute.Int("post_id", int(postID)),
		attribute.Int("buyer_id", int(buyerID)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return false
	}
	price, forSale := post.Listing.Price()
	if !forSale {
		return false
	}
	buyer, ok := s.users[buyerID]
	if !ok {
		return false
	}
	seller, ok := s.users[post.UserID]
	if !ok {
		return false
	}
	// A trade needs two parties.
	if buyer.ID == seller.ID {
		return false
	}
	if buyer.Credits < price {
		observability.StoreOperationErrors.WithLabelValues("trade", "purchase", models.CodeInsufficientFunds).Inc()
		return false
	}

	buyer.Credits -= price
	seller.Credits += price
	seller.TotalEarnings += price
	seller.TradesCompleted++
	post.Downloads++

	observability.StoreOperationsTotal.WithLabelValues("trade", "purchase").Inc()
	observability.CreditsTransferred.WithLabelValues("trade").Add(float64(price))
	s.postLog.LogUpdate(ctx, map[string]interface{}{
		"post_id":   postID,
		"buyer_id":  buyerID,
		"seller_id": seller.ID,
		"price":     price,
	})

	return true
}
