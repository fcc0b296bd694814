package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeScrapeFailed  ErrorCode = "SCRAPE_FAILED"

	// Запрос и валидация
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Бизнес-логика
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeAlreadyApplied   ErrorCode = "ALREADY_APPLIED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и авторизация
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeAuthFailed          ErrorCode = "AUTH_FAILED"
	CodeInvalidToken        ErrorCode = "INVALID_TOKEN"
	CodeForbidden           ErrorCode = "FORBIDDEN"
	CodeForbiddenEdit       ErrorCode = "FORBIDDEN_EDIT"
	CodeForbiddenTransition ErrorCode = "FORBIDDEN_TRANSITION"
)
