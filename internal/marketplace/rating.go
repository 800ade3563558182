package marketplace

import (
	"time"

	"github.com/Praveenkaushik12/CollegeFied/models"
	"gorm.io/gorm"
)

// RatingWindow is how long after the product's last status change the
// approved buyer may still rate the seller.
const RatingWindow = 7 * 24 * time.Hour

// RatingGate validates and persists post-sale ratings.
type RatingGate struct {
	db *gorm.DB
}

func NewRatingGate(db *gorm.DB) *RatingGate {
	return &RatingGate{db: db}
}

// CreateRating checks the full eligibility chain: the product must be sold,
// the buyer must hold the approved request for it, the rating window must be
// open and the buyer must not have rated it before.
func (g *RatingGate) CreateRating(buyerID, productID uint, score float64, review string) (*models.Rating, error) {
	var rating models.Rating
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}

		if product.Status != models.ProductStatusSold {
			return ErrProductNotSold
		}

		var approved int64
		if err := tx.Model(&models.ProductRequest{}).
			Where("buyer_id = ? AND product_id = ? AND status = ?", buyerID, productID, models.RequestStatusApproved).
			Count(&approved).Error; err != nil {
			return err
		}
		if approved == 0 {
			return ErrNotApprovedBuyer
		}

		if time.Since(product.UpdatedAt) > RatingWindow {
			return ErrRatingWindowExpired
		}

		var existing int64
		if err := tx.Model(&models.Rating{}).
			Where("buyer_id = ? AND product_id = ?", buyerID, productID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateRating
		}

		if score < 1.0 || score > 5.0 {
			return ErrScoreOutOfRange
		}

		rating = models.Rating{
			BuyerID:   buyerID,
			SellerID:  product.SellerID,
			ProductID: productID,
			Score:     score,
			Review:    review,
		}
		return tx.Create(&rating).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// SellerRatings lists the ratings a seller has received, newest first.
func (g *RatingGate) SellerRatings(sellerID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := g.db.Preload("Buyer").
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// SellerAverage returns the mean score for a seller, 0 when unrated.
func (g *RatingGate) SellerAverage(sellerID uint) (float64, error) {
	var avg *float64
	err := g.db.Model(&models.Rating{}).
		Where("seller_id = ?", sellerID).
		Select("avg(score)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
