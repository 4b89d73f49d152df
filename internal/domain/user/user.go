package user

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type Profile struct {
	DOB           *time.Time
	Gender        string
	Village       string
	Mandal        string
	District      string
	Pincode       string
	Caste         string
	Subcaste      string
	MaritalStatus string
	NativePlace   string
}

type Education struct {
	Position      int
	Degree        string
	Institution   string
	YearOfPassing *int
	Grade         string
}

type Employment struct {
	Position          int
	CompanyName       string
	Role              string
	YearsOfExperience *float64
	CurrentlyWorking  bool
}

type FamilyMember struct {
	Position   int
	Name       string
	Relation   string
	Education  string
	Profession string
}

type User struct {
	ID         string
	FullName   string
	Email      string
	Phone      string
	Role       string
	PhotoURL   string
	Profile    Profile
	Education  []Education
	Employment []Employment
	Family     []FamilyMember
	CreatedAt  time.Time
}

// Registration is a validated, normalized row ready to be persisted.
type Registration struct {
	FullName   string
	Email      string
	Phone      string
	Password   string
	PhotoURL   string
	Profile    Profile
	Education  []Education
	Employment []Employment
	Family     []FamilyMember
}

// NewUser is what the importer writes: a registration with its password
// already hashed.
type NewUser struct {
	Registration
	PasswordHash string
	Role         string
}
