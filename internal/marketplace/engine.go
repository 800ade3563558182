package marketplace

import (
	"fmt"
	"strings"

	"github.com/Praveenkaushik12/CollegeFied/models"
	"gorm.io/gorm"
)

// RoomCoordinator keeps chat rooms in lockstep with request transitions.
// The engine calls it inside the same transaction as the status write, so a
// failed room update rolls the whole transition back.
type RoomCoordinator interface {
	EnsureRoom(tx *gorm.DB, productID, buyerID, sellerID uint) error
	DeactivateRoom(tx *gorm.DB, productID, buyerID, sellerID uint) error
}

// ProfileChecker reports which required profile fields a user has not filled.
type ProfileChecker interface {
	MissingFields(tx *gorm.DB, userID uint) ([]string, error)
}

// allowedTransitions is the full request status graph. Anything not listed
// here fails with ErrInvalidTransition; rejected is terminal.
var allowedTransitions = map[string][]string{
	models.RequestStatusPending:  {models.RequestStatusAccepted, models.RequestStatusRejected},
	models.RequestStatusAccepted: {models.RequestStatusApproved, models.RequestStatusRejected},
	models.RequestStatusApproved: {models.RequestStatusRejected},
	models.RequestStatusRejected: {},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Engine drives the product-request lifecycle. Every mutation runs inside
// one GORM transaction under a per-product lock: the status write, the
// product-status projection and the chat-room update commit or roll back
// together.
type Engine struct {
	db       *gorm.DB
	rooms    RoomCoordinator
	profiles ProfileChecker
	locks    *productLocks
}

func NewEngine(db *gorm.DB, rooms RoomCoordinator, profiles ProfileChecker) *Engine {
	return &Engine{
		db:       db,
		rooms:    rooms,
		profiles: profiles,
		locks:    newProductLocks(),
	}
}

// CreateRequest opens a pending request from buyer to the product's seller.
func (e *Engine) CreateRequest(buyerID, productID uint) (*models.ProductRequest, error) {
	unlock := e.locks.lock(productID)
	defer unlock()

	var request models.ProductRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}

		if product.SellerID == buyerID {
			return ErrSelfRequest
		}
		if product.Status == models.ProductStatusSold || product.Status == models.ProductStatusUnavailable {
			return ErrProductUnavailable
		}

		var pending int64
		if err := tx.Model(&models.ProductRequest{}).
			Where("buyer_id = ? AND product_id = ? AND status = ?", buyerID, productID, models.RequestStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicatePending
		}

		missing, err := e.profiles.MissingFields(tx, buyerID)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing fields: %s", ErrProfileIncomplete, strings.Join(missing, ", "))
		}

		request = models.ProductRequest{
			BuyerID:   buyerID,
			SellerID:  product.SellerID,
			ProductID: productID,
			Status:    models.RequestStatusPending,
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Transition applies a status change requested by actor. Buyers may only
// cancel (reject) their own request; sellers may accept, approve or reject.
func (e *Engine) Transition(requestID, actorID uint, newStatus string) (*models.ProductRequest, error) {
	productID, err := e.productIDForRequest(requestID)
	if err != nil {
		return nil, err
	}

	unlock := e.locks.lock(productID)
	defer unlock()

	var request models.ProductRequest
	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		switch actorID {
		case request.BuyerID:
			if newStatus != models.RequestStatusRejected {
				return ErrForbidden
			}
		case request.SellerID:
			if newStatus != models.RequestStatusAccepted &&
				newStatus != models.RequestStatusApproved &&
				newStatus != models.RequestStatusRejected {
				return ErrForbidden
			}
		default:
			return ErrForbidden
		}

		if !transitionAllowed(request.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, newStatus)
		}

		if newStatus == models.RequestStatusAccepted || newStatus == models.RequestStatusApproved {
			active, err := hasActiveRequest(tx, request.ProductID, request.ID)
			if err != nil {
				return err
			}
			if active {
				return ErrActiveRequestExists
			}
		}

		if err := tx.Model(&request).Update("status", newStatus).Error; err != nil {
			return err
		}
		return e.applyTransition(tx, &request, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CancelRequest is the buyer-side cancel; it rides the same codepath as a
// rejection by the seller.
func (e *Engine) CancelRequest(requestID, buyerID uint) (*models.ProductRequest, error) {
	return e.Transition(requestID, buyerID, models.RequestStatusRejected)
}

// applyTransition runs the synchronous cascade in fixed order: first the
// product-status projection, then the chat-room coordinator.
func (e *Engine) applyTransition(tx *gorm.DB, request *models.ProductRequest, newStatus string) error {
	if err := projectRequestStatus(tx, request.ProductID, newStatus); err != nil {
		return err
	}

	switch newStatus {
	case models.RequestStatusAccepted:
		return e.rooms.EnsureRoom(tx, request.ProductID, request.BuyerID, request.SellerID)
	case models.RequestStatusRejected:
		return e.rooms.DeactivateRoom(tx, request.ProductID, request.BuyerID, request.SellerID)
	}
	// approved keeps the room active; nothing to do.
	return nil
}

// MarkProductSold is the one manual status write a seller may perform.
// Every request still pending or accepted is rejected (with its chat room
// deactivated); an approved request represents the completed sale and is
// left untouched, its room included.
func (e *Engine) MarkProductSold(productID, sellerID uint) (*models.Product, error) {
	unlock := e.locks.lock(productID)
	defer unlock()

	var product models.Product
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		if product.SellerID != sellerID {
			return ErrForbidden
		}
		if product.Status == models.ProductStatusSold {
			return ErrAlreadySold
		}

		var losers []models.ProductRequest
		if err := tx.Where("product_id = ? AND status IN ?", productID,
			[]string{models.RequestStatusPending, models.RequestStatusAccepted}).
			Find(&losers).Error; err != nil {
			return err
		}
		for i := range losers {
			r := &losers[i]
			if err := tx.Model(r).Update("status", models.RequestStatusRejected).Error; err != nil {
				return err
			}
			if err := e.rooms.DeactivateRoom(tx, r.ProductID, r.BuyerID, r.SellerID); err != nil {
				return err
			}
		}

		product.Status = models.ProductStatusSold
		return tx.Model(&product).Update("status", models.ProductStatusSold).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteRequest removes a buyer's own request and recomputes the product
// status from the requests that remain.
func (e *Engine) DeleteRequest(requestID, actorID uint) error {
	productID, err := e.productIDForRequest(requestID)
	if err != nil {
		return err
	}

	unlock := e.locks.lock(productID)
	defer unlock()

	return e.db.Transaction(func(tx *gorm.DB) error {
		var request models.ProductRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}
		if request.BuyerID != actorID {
			return ErrForbidden
		}

		wasActive := request.IsActive()
		if err := tx.Delete(&request).Error; err != nil {
			return err
		}

		if wasActive {
			if err := e.rooms.DeactivateRoom(tx, request.ProductID, request.BuyerID, request.SellerID); err != nil {
				return err
			}
		}
		return projectRequestDeleted(tx, request.ProductID)
	})
}

func (e *Engine) productIDForRequest(requestID uint) (uint, error) {
	var request models.ProductRequest
	if err := e.db.Select("id", "product_id").First(&request, requestID).Error; err != nil {
		return 0, err
	}
	return request.ProductID, nil
}
