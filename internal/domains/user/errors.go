package user

import "bookmarket-backend/internal/shared/apperror"

var (
	ErrUserNotFound = apperror.NotFound("USER_NOT_FOUND", "User not found", nil)

	ErrEmailAlreadyExists = apperror.Validation(apperror.CodeDuplicateField, "Duplicate field value entered",
		map[string]string{"email": "email already exists"})

	// Không tiết lộ email có tồn tại hay không
	ErrInvalidCredentials = apperror.Unauthorized("Invalid credentials")

	ErrInvalidRole = apperror.Validation(apperror.CodeValidationFailed, "Invalid field value entered",
		map[string]string{"role": "role must be user, contributor or admin"})

	// User còn sở hữu dữ liệu (contributor, book, review) thì không xóa được
	ErrUserHasResources = apperror.Validation("USER_HAS_RESOURCES",
		"User still owns published content; remove it first", nil)

	ErrCannotDeleteSelf = apperror.Validation("CANNOT_DELETE_SELF", "Admins cannot delete their own account", nil)

	ErrNoFieldsToUpdate = apperror.Validation(apperror.CodeValidationFailed, "Nothing to update", nil)
)
