package user

const (
	MaxEducationSlots  = 3
	MaxEmploymentSlots = 3
	MaxFamilySlots     = 10
)

type EducationSlot struct {
	Degree        string
	Institution   string
	YearOfPassing string
	Grade         string
}

func (s EducationSlot) IsEmpty() bool {
	return blank(s.Degree, s.Institution, s.YearOfPassing, s.Grade)
}

type EmploymentSlot struct {
	CompanyName       string
	Role              string
	YearsOfExperience string
	CurrentlyWorking  string
}

func (s EmploymentSlot) IsEmpty() bool {
	return blank(s.CompanyName, s.Role, s.YearsOfExperience, s.CurrentlyWorking)
}

type FamilySlot struct {
	Name       string
	Relation   string
	Education  string
	Profession string
}

func (s FamilySlot) IsEmpty() bool {
	return blank(s.Name, s.Relation, s.Education, s.Profession)
}

// RowRecord is one prospective user as read from an uploaded file. Values are
// raw strings; ValidateRow turns them into a Registration.
type RowRecord struct {
	Row int

	FullName      string
	Email         string
	Phone         string
	Password      string
	PhotoURL      string
	DOB           string
	Gender        string
	Village       string
	Mandal        string
	District      string
	Pincode       string
	Caste         string
	Subcaste      string
	MaritalStatus string
	NativePlace   string

	Education  [MaxEducationSlots]EducationSlot
	Employment [MaxEmploymentSlots]EmploymentSlot
	Family     [MaxFamilySlots]FamilySlot
}
