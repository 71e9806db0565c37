// internal/services/review_ledger.go
package services

import (
	"math"
	"sync"

	"github.com/javajoker/marketflow-backend/internal/models"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// RatingSource supplies live rating aggregates to the catalog filter.
type RatingSource interface {
	AverageRating(productID string, fallback float64) float64
	ReviewCount(productID string) int
}

// ReviewLedger is an append-only collection of reviews kept newest first.
// It does not check purchase membership; callers gate submission.
type ReviewLedger struct {
	mu      sync.RWMutex
	reviews []models.Review
	newID   func() string
}

func NewReviewLedger(seed []models.Review) *ReviewLedger {
	reviews := make([]models.Review, len(seed))
	copy(reviews, seed)

	return &ReviewLedger{
		reviews: reviews,
		newID: func() string {
			id, err := utils.GenerateShortID(9)
			if err != nil {
				return "review"
			}
			return id
		},
	}
}

// AddReview prepends a verified review by author. It is a no-op returning
// false when the comment is empty or the rating is outside 1..5.
func (l *ReviewLedger) AddReview(productID string, rating int, comment string, author models.Identity) (models.Review, bool) {
	if comment == "" || rating < MinReviewRating || rating > MaxReviewRating {
		return models.Review{}, false
	}

	review := models.Review{
		ID:         l.newID(),
		ProductID:  productID,
		UserName:   author.Name,
		Rating:     rating,
		Comment:    comment,
		Date:       "Just now",
		UserImage:  author.Image,
		IsVerified: true,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.reviews = append([]models.Review{review}, l.reviews...)
	return review, true
}

func (l *ReviewLedger) ReviewsFor(productID string) []models.Review {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matching := []models.Review{}
	for _, r := range l.reviews {
		if r.ProductID == productID {
			matching = append(matching, r)
		}
	}
	return matching
}

func (l *ReviewLedger) ReviewCount(productID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, r := range l.reviews {
		if r.ProductID == productID {
			count++
		}
	}
	return count
}

// AverageRating is the mean rating of productID rounded to one decimal place,
// or fallback when the product has no reviews.
func (l *ReviewLedger) AverageRating(productID string, fallback float64) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum, count := 0, 0
	for _, r := range l.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return fallback
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

func (l *ReviewLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reviews)
}
