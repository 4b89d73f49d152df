package file

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/unitynest/nest-backend/internal/domain/user"
)

// assign stores one cell into the record.
type assign func(rec *user.RowRecord, value string)

var requiredColumns = []string{"full_name", "email", "phone", "password"}

var columnAliases = map[string]string{
	"name":          "full_name",
	"fullname":      "full_name",
	"mobile":        "phone",
	"mobile_number": "phone",
	"phone_number":  "phone",
	"date_of_birth": "dob",
	"birth_date":    "dob",
	"pin_code":      "pincode",
	"sub_caste":     "subcaste",
	"photo":         "photo_url",
	"native":        "native_place",
}

var scalarColumns = map[string]func(*user.RowRecord) *string{
	"full_name":      func(r *user.RowRecord) *string { return &r.FullName },
	"email":          func(r *user.RowRecord) *string { return &r.Email },
	"phone":          func(r *user.RowRecord) *string { return &r.Phone },
	"password":       func(r *user.RowRecord) *string { return &r.Password },
	"photo_url":      func(r *user.RowRecord) *string { return &r.PhotoURL },
	"dob":            func(r *user.RowRecord) *string { return &r.DOB },
	"gender":         func(r *user.RowRecord) *string { return &r.Gender },
	"village":        func(r *user.RowRecord) *string { return &r.Village },
	"mandal":         func(r *user.RowRecord) *string { return &r.Mandal },
	"district":       func(r *user.RowRecord) *string { return &r.District },
	"pincode":        func(r *user.RowRecord) *string { return &r.Pincode },
	"caste":          func(r *user.RowRecord) *string { return &r.Caste },
	"subcaste":       func(r *user.RowRecord) *string { return &r.Subcaste },
	"marital_status": func(r *user.RowRecord) *string { return &r.MaritalStatus },
	"native_place":   func(r *user.RowRecord) *string { return &r.NativePlace },
}

var educationColumns = map[string]func(*user.EducationSlot) *string{
	"degree":          func(s *user.EducationSlot) *string { return &s.Degree },
	"institution":     func(s *user.EducationSlot) *string { return &s.Institution },
	"college":         func(s *user.EducationSlot) *string { return &s.Institution },
	"year_of_passing": func(s *user.EducationSlot) *string { return &s.YearOfPassing },
	"year":            func(s *user.EducationSlot) *string { return &s.YearOfPassing },
	"grade":           func(s *user.EducationSlot) *string { return &s.Grade },
}

var employmentColumns = map[string]func(*user.EmploymentSlot) *string{
	"company_name":        func(s *user.EmploymentSlot) *string { return &s.CompanyName },
	"company":             func(s *user.EmploymentSlot) *string { return &s.CompanyName },
	"role":                func(s *user.EmploymentSlot) *string { return &s.Role },
	"designation":         func(s *user.EmploymentSlot) *string { return &s.Role },
	"years_of_experience": func(s *user.EmploymentSlot) *string { return &s.YearsOfExperience },
	"experience":          func(s *user.EmploymentSlot) *string { return &s.YearsOfExperience },
	"currently_working":   func(s *user.EmploymentSlot) *string { return &s.CurrentlyWorking },
}

var familyColumns = map[string]func(*user.FamilySlot) *string{
	"name":       func(s *user.FamilySlot) *string { return &s.Name },
	"relation":   func(s *user.FamilySlot) *string { return &s.Relation },
	"education":  func(s *user.FamilySlot) *string { return &s.Education },
	"profession": func(s *user.FamilySlot) *string { return &s.Profession },
	"occupation": func(s *user.FamilySlot) *string { return &s.Profession },
}

var groupColumnPattern = regexp.MustCompile(`^(education|employment|family)_([a-z_]+?)_(\d+)$`)

func normalizeHeader(raw string) string {
	h := cleanHeader(raw)
	if canonical, ok := columnAliases[h]; ok {
		return canonical
	}
	return h
}

func cleanHeader(raw string) string {
	h := strings.TrimPrefix(raw, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	for strings.Contains(h, "__") {
		h = strings.ReplaceAll(h, "__", "_")
	}
	return h
}

// resolveColumn returns the assignment for a normalized header, or nil when
// the header is not recognized.
func resolveColumn(header string) assign {
	if field, ok := scalarColumns[header]; ok {
		return func(rec *user.RowRecord, value string) { *field(rec) = value }
	}

	m := groupColumnPattern.FindStringSubmatch(header)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[3])
	if err != nil || n < 1 {
		return nil
	}
	idx := n - 1

	switch m[1] {
	case "education":
		field, ok := educationColumns[m[2]]
		if !ok || idx >= user.MaxEducationSlots {
			return nil
		}
		return func(rec *user.RowRecord, value string) { *field(&rec.Education[idx]) = value }
	case "employment":
		field, ok := employmentColumns[m[2]]
		if !ok || idx >= user.MaxEmploymentSlots {
			return nil
		}
		return func(rec *user.RowRecord, value string) { *field(&rec.Employment[idx]) = value }
	case "family":
		field, ok := familyColumns[m[2]]
		if !ok || idx >= user.MaxFamilySlots {
			return nil
		}
		return func(rec *user.RowRecord, value string) { *field(&rec.Family[idx]) = value }
	}
	return nil
}

// buildRecords maps a header row plus data rows into RowRecords. Blank rows
// are dropped but keep their row number.
func buildRecords(header []string, rows [][]string) ([]user.RowRecord, error) {
	if len(header) == 0 {
		return nil, ErrEmptyFile
	}

	assigns := make([]assign, len(header))
	present := make(map[string]bool, len(header))
	for i, raw := range header {
		name := normalizeHeader(raw)
		present[name] = true
		assigns[i] = resolveColumn(name)
	}

	var missing []string
	for _, name := range requiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &missingColumnsError{columns: missing}
	}

	records := make([]user.RowRecord, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		rec := user.RowRecord{Row: i + 1}
		for j, value := range row {
			if j >= len(assigns) || assigns[j] == nil {
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			assigns[j](&rec, value)
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
