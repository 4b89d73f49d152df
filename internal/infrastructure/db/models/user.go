package models

import "time"

// Unique index names are matched by the import repository to tell an email
// conflict from a phone conflict.
const (
	UsersEmailIndex = "idx_users_email"
	UsersPhoneIndex = "idx_users_phone"
)

type User struct {
	ID           string            `gorm:"type:uuid;primaryKey"`
	FullName     string            `gorm:"size:255;not null"`
	Email        string            `gorm:"size:320;not null;uniqueIndex:idx_users_email"`
	Phone        string            `gorm:"size:32;not null;uniqueIndex:idx_users_phone"`
	PasswordHash string            `gorm:"type:text;not null"`
	Role         string            `gorm:"size:16;not null;default:member"`
	PhotoURL     *string           `gorm:"type:text"`
	Profile      *Profile          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Education    []EducationEntry  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Employment   []EmploymentEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Family       []FamilyMember    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

type Profile struct {
	ID            int64      `gorm:"primaryKey"`
	UserID        string     `gorm:"type:uuid;not null;uniqueIndex"`
	DOB           *time.Time `gorm:"column:dob;type:date"`
	Gender        *string    `gorm:"size:16"`
	Village       *string    `gorm:"size:120"`
	Mandal        *string    `gorm:"size:120"`
	District      *string    `gorm:"size:120"`
	Pincode       *string    `gorm:"size:6"`
	Caste         *string    `gorm:"size:120"`
	Subcaste      *string    `gorm:"size:120"`
	MaritalStatus *string    `gorm:"size:16"`
	NativePlace   *string    `gorm:"size:120"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

type EducationEntry struct {
	ID            int64   `gorm:"primaryKey"`
	UserID        string  `gorm:"type:uuid;index;not null"`
	Position      int     `gorm:"not null"`
	Degree        string  `gorm:"size:255;not null"`
	Institution   string  `gorm:"size:255;not null"`
	YearOfPassing *int    `gorm:"type:smallint"`
	Grade         *string `gorm:"size:32"`
	CreatedAt     time.Time
}

func (EducationEntry) TableName() string {
	return "education_entries"
}

type EmploymentEntry struct {
	ID                int64    `gorm:"primaryKey"`
	UserID            string   `gorm:"type:uuid;index;not null"`
	Position          int      `gorm:"not null"`
	CompanyName       string   `gorm:"size:255;not null"`
	Role              string   `gorm:"size:255;not null"`
	YearsOfExperience *float64 `gorm:"type:numeric(4,1)"`
	CurrentlyWorking  bool     `gorm:"not null;default:false"`
	CreatedAt         time.Time
}

func (EmploymentEntry) TableName() string {
	return "employment_entries"
}

type FamilyMember struct {
	ID         int64   `gorm:"primaryKey"`
	UserID     string  `gorm:"type:uuid;index;not null"`
	Position   int     `gorm:"not null"`
	Name       string  `gorm:"size:255;not null"`
	Relation   string  `gorm:"size:32;not null"`
	Education  *string `gorm:"size:255"`
	Profession *string `gorm:"size:255"`
	CreatedAt  time.Time
}

func (FamilyMember) TableName() string {
	return "family_members"
}
