package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - ресурс не найден (404). domain - имя сущности ("recruit", "offer", ...)
func ErrNotFound(domain string) *AppError {
	return New(CodeNotFound, domain, capitalize(domain)+" not found", http.StatusNotFound)
}

// ErrInvalidOperation - невалидная операция (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - переход статуса невозможен (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrScrapeFailed - ошибка внешней страницы товара (502), сообщение апстрима пробрасывается
func ErrScrapeFailed(err error) *AppError {
	message := "Failed to fetch product page"
	if err != nil {
		message = err.Error()
	}
	return Wrap(err, CodeScrapeFailed, "scraper", message, http.StatusBadGateway)
}

// =========================================================================
// Предопределенные переменные
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeAuthFailed,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"request",
	"Too many requests",
	http.StatusTooManyRequests,
)

// --- Ownership & roles ---

// ErrInsufficientPermissions - роль или владение не позволяют действие
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrForbiddenEdit - попытка изменить чужой ресурс
var ErrForbiddenEdit = New(
	CodeForbiddenEdit,
	"auth",
	"You can only edit your own resources",
	http.StatusForbidden,
)

// ErrForbiddenTransition - участник не может выполнить этот переход статуса
var ErrForbiddenTransition = New(
	CodeForbiddenTransition,
	"lifecycle",
	"This status transition is not allowed for you",
	http.StatusForbidden,
)

// --- Applications ---

var ErrAlreadyApplied = New(
	CodeAlreadyApplied,
	"application",
	"You have already applied to this recruit",
	http.StatusConflict,
)

// --- Offers ---

var ErrOfferToOwnPortfolio = New(
	CodeInvalidOperation,
	"offer",
	"Cannot send an offer to your own portfolio",
	http.StatusBadRequest,
)

// --- Profiles ---

var ErrBrandProfileExists = New(
	CodeAlreadyExists,
	"brand_profile",
	"Brand profile already exists",
	http.StatusConflict,
)

func capitalize(s string) string {
	if s == "" {
		return "Resource"
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}
