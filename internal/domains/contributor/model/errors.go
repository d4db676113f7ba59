package model

import (
	"strings"

	"bookmarket-backend/internal/shared/apperror"
)

const (
	CodeContributorNotFound = "CONTRIBUTOR_NOT_FOUND"
	CodeAlreadyRegistered   = "CONTRIBUTOR_ALREADY_REGISTERED"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
)

var (
	ErrContributorNotFound = apperror.NotFound(CodeContributorNotFound, "Contributor not found", nil)

	// Creation gate: lỗi validation, không phải forbidden
	ErrAlreadyRegistered = apperror.Validation(CodeAlreadyRegistered,
		"This user has already registered a contributor", nil)

	ErrNotOwner = apperror.Forbidden("Not authorized to modify this contributor")

	ErrNoFile = apperror.Validation(apperror.CodeValidationFailed, "Please upload a file",
		map[string]string{"file": "is required"})

	ErrEmptyUpdate = apperror.Validation(apperror.CodeValidationFailed, "Nothing to update", nil)
)

// DuplicateField maps a unique-constraint name to a ValidationFailed error.
func DuplicateField(constraint string) error {
	field := "field"
	switch {
	case strings.Contains(constraint, "email"):
		field = "email"
	case strings.Contains(constraint, "phone"):
		field = "phone"
	}
	return apperror.Validation(apperror.CodeDuplicateField, "Duplicate field value entered",
		map[string]string{field: "already exists"})
}

func StorageUnavailable(err error) error {
	return apperror.Dependency(CodeStorageUnavailable, "Photo storage is unavailable", err)
}
