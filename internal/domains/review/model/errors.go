package model

import "bookmarket-backend/internal/shared/apperror"

// Error codes
const (
	CodeReviewNotFound  = "REVIEW_NOT_FOUND"
	CodeAlreadyReviewed = "ALREADY_REVIEWED"
)

// Errors
var (
	ErrReviewNotFound = apperror.NotFound(CodeReviewNotFound, "Review not found", nil)

	// unique (contributor_id, user_id)
	ErrAlreadyReviewed = apperror.Validation(CodeAlreadyReviewed,
		"You have already reviewed this contributor", nil)

	ErrNotOwner    = apperror.Forbidden("Not authorized to modify this review")
	ErrEmptyUpdate = apperror.Validation(apperror.CodeValidationFailed, "Nothing to update", nil)
)
