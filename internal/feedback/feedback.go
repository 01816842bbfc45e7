package feedback

import "errors"

var (
	ErrNotFound      = errors.New("feedback not found")
	ErrAlreadyExists = errors.New("feedback already submitted for this product")
	ErrNotEligible   = errors.New("only delivered products can be reviewed")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Feedback is a product review left by a customer after delivery.
type Feedback struct {
	FeedbackID int    `json:"feedbackId"`
	UserID     int    `json:"userId"`
	ProductID  int    `json:"productId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}
