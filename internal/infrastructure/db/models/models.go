package models

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&EducationEntry{},
		&EmploymentEntry{},
		&FamilyMember{},
		&ImportBatch{},
		&AuditLog{},
		&Payment{},
	}
}
