package marketplace

import (
	"github.com/Praveenkaushik12/CollegeFied/models"
	"gorm.io/gorm"
)

// The projector is the only writer of Product.Status apart from the manual
// sold transition. It derives the status from the request that just changed,
// re-checking the remaining requests where a rejection may free the product.

func hasActiveRequest(tx *gorm.DB, productID, excludeRequestID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.ProductRequest{}).
		Where("product_id = ? AND status IN ?", productID,
			[]string{models.RequestStatusAccepted, models.RequestStatusApproved})
	if excludeRequestID != 0 {
		q = q.Where("id <> ?", excludeRequestID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// projectRequestStatus applies the projection rules after a request moved to
// newStatus. It must run in the same transaction, after the status write.
func projectRequestStatus(tx *gorm.DB, productID uint, newStatus string) error {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		return err
	}
	if product.Status == models.ProductStatusSold {
		return nil
	}

	switch newStatus {
	case models.RequestStatusAccepted:
		if product.Status == models.ProductStatusAvailable {
			return setProductStatus(tx, &product, models.ProductStatusReserved)
		}
	case models.RequestStatusApproved:
		if product.Status == models.ProductStatusReserved {
			return setProductStatus(tx, &product, models.ProductStatusUnavailable)
		}
	case models.RequestStatusRejected:
		if product.Status == models.ProductStatusReserved || product.Status == models.ProductStatusUnavailable {
			// The rejected request no longer counts; another request may
			// still hold the product.
			active, err := hasActiveRequest(tx, productID, 0)
			if err != nil {
				return err
			}
			if !active {
				return setProductStatus(tx, &product, models.ProductStatusAvailable)
			}
		}
	}
	return nil
}

// projectRequestDeleted recomputes the product status from scratch after a
// request row disappeared. Sold products are never touched.
func projectRequestDeleted(tx *gorm.DB, productID uint) error {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		return err
	}
	if product.Status == models.ProductStatusSold {
		return nil
	}

	var approved, accepted int64
	if err := tx.Model(&models.ProductRequest{}).
		Where("product_id = ? AND status = ?", productID, models.RequestStatusApproved).
		Count(&approved).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.ProductRequest{}).
		Where("product_id = ? AND status = ?", productID, models.RequestStatusAccepted).
		Count(&accepted).Error; err != nil {
		return err
	}

	want := models.ProductStatusAvailable
	if approved > 0 {
		want = models.ProductStatusUnavailable
	} else if accepted > 0 {
		want = models.ProductStatusReserved
	}
	if product.Status == want {
		return nil
	}
	return setProductStatus(tx, &product, want)
}

func setProductStatus(tx *gorm.DB, product *models.Product, status string) error {
	product.Status = status
	return tx.Model(product).Update("status", status).Error
}
