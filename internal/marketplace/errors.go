package marketplace

import "errors"

// Request lifecycle errors.
var (
	ErrSelfRequest         = errors.New("you cannot request your own product")
	ErrProductUnavailable  = errors.New("product is not open for requests")
	ErrDuplicatePending    = errors.New("a pending request for this product already exists")
	ErrProfileIncomplete   = errors.New("complete your profile to send a product request")
	ErrForbidden           = errors.New("you do not have permission to update this request")
	ErrInvalidTransition   = errors.New("invalid request status transition")
	ErrActiveRequestExists = errors.New("there is already an active request for this product")
	ErrAlreadySold         = errors.New("product is already sold")
)

// Chat errors.
var (
	ErrChatInactive = errors.New("chat is inactive, you cannot send new messages")
	ErrUnauthorized = errors.New("you are not a member of this chat room")
)

// Rating errors.
var (
	ErrProductNotSold      = errors.New("you can only rate a product that has been sold")
	ErrNotApprovedBuyer    = errors.New("you can only rate a product you were approved for")
	ErrRatingWindowExpired = errors.New("the rating window for this product has expired")
	ErrDuplicateRating     = errors.New("you have already rated this product")
	ErrScoreOutOfRange     = errors.New("rating must be between 1.0 and 5.0")
)
