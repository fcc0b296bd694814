package auth

import "hostmarket_backend/internal/models"

// Разрешения, которые выдаются ролям
const (
	PermRecruitWrite      = "recruit:write"
	PermPortfolioWrite    = "portfolio:write"
	PermApplicationCreate = "application:create"
	PermOfferSend         = "offer:send"
	PermSponsorshipWrite  = "sponsorship:write"
	PermBrandProfileWrite = "brand_profile:write"
	PermNewsWrite         = "news:write"
	PermShortWrite        = "short:write"
)

// Permissions - RBAC таблица. host хранится как showhost.
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		PermRecruitWrite, PermPortfolioWrite, PermApplicationCreate, PermOfferSend,
		PermSponsorshipWrite, PermBrandProfileWrite, PermNewsWrite, PermShortWrite,
	},
	models.UserRoleBrand: {
		PermRecruitWrite, PermOfferSend, PermSponsorshipWrite, PermBrandProfileWrite, PermShortWrite,
	},
	models.UserRoleShowhost: {
		PermPortfolioWrite, PermApplicationCreate, PermShortWrite,
	},
	models.UserRoleModel: {
		PermPortfolioWrite, PermShortWrite,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role.Canonical()] {
		if p == permission {
			return true
		}
	}
	return false
}

// RolesWith возвращает все роли (включая алиасы), у которых есть разрешение.
// Используется для RequireRoles в маршрутах.
func RolesWith(permission string) []models.UserRole {
	var roles []models.UserRole
	for _, role := range []models.UserRole{
		models.UserRoleAdmin, models.UserRoleBrand, models.UserRoleShowhost, models.UserRoleHost, models.UserRoleModel,
	} {
		if HasPermission(role, permission) {
			roles = append(roles, role)
		}
	}
	return roles
}

// CanRegisterAs - роли, доступные при самостоятельной регистрации
func CanRegisterAs(role models.UserRole) bool {
	return role.Valid() && role != models.UserRoleAdmin
}
