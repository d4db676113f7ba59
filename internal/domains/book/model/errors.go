package model

import (
	"strings"

	"bookmarket-backend/internal/shared/apperror"
)

const CodeBookNotFound = "BOOK_NOT_FOUND"

var (
	ErrBookNotFound = apperror.NotFound(CodeBookNotFound, "Book not found", nil)
	ErrNotOwner     = apperror.Forbidden("Not authorized to modify this book")

	// thêm sách vào contributor của người khác
	ErrNotContributorOwner = apperror.Forbidden("Not authorized to add a book to this contributor")

	ErrEmptyUpdate = apperror.Validation(apperror.CodeValidationFailed, "Nothing to update", nil)

	// CHECK constraint của bảng books (price, pages, average_rating)
	ErrInvalidValue = apperror.Validation(apperror.CodeValidationFailed, "Invalid field value entered", nil)
)

// DuplicateField maps a unique-constraint name (title/isbn) to ValidationFailed.
func DuplicateField(constraint string) error {
	field := "field"
	switch {
	case strings.Contains(constraint, "title"):
		field = "title"
	case strings.Contains(constraint, "isbn"):
		field = "isbn"
	}
	return apperror.Validation(apperror.CodeDuplicateField, "Duplicate field value entered",
		map[string]string{field: "already exists"})
}
