package models

// OwnerAccessor возвращает кандидата во владельцы документа или "".
type OwnerAccessor func() string

// Owned - документ с одним владельцем, найденным по списку алиасов.
type Owned interface {
	OwnerAccessors() []OwnerAccessor
}

// ownerAccessors - общий порядок для всех поколений схемы:
// createdBy, затем legacy createdBy, ownerId, userId, brand.ownerId.
func ownerAccessors(createdBy string, legacy Legacy) []OwnerAccessor {
	return []OwnerAccessor{
		func() string { return createdBy },
		func() string { return legacy.legacyString("createdBy") },
		func() string { return legacy.legacyString("ownerId") },
		func() string { return legacy.legacyString("userId") },
		func() string { return legacy.legacyString("brand.ownerId") },
	}
}
