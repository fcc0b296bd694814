package auth

import "hostmarket_backend/internal/models"

// Actor - личность из токена, прикрепленная к запросу
type Actor struct {
	ID   string
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

// ResolveOwner проходит аксессоры по порядку и возвращает первое непустое значение
func ResolveOwner(accessors ...models.OwnerAccessor) string {
	for _, get := range accessors {
		if get == nil {
			continue
		}
		if id := get(); id != "" {
			return id
		}
	}
	return ""
}

// OwnerOf - владелец документа по его списку алиасов
func OwnerOf(doc models.Owned) string {
	return ResolveOwner(doc.OwnerAccessors()...)
}

// CanAct: admin может все, остальные - только если совпадают с одним из владельцев
func CanAct(actor Actor, ownerIDs ...string) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.ID == "" {
		return false
	}
	for _, id := range ownerIDs {
		if id != "" && id == actor.ID {
			return true
		}
	}
	return false
}

// CanActOn - CanAct по владельцу документа
func CanActOn(actor Actor, doc models.Owned) bool {
	return CanAct(actor, OwnerOf(doc))
}
