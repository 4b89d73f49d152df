package user

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
	minPhoneDigits    = 10
	minAge            = 13
	maxAge            = 120
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^\+?[\d\s\-()]{10,15}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
	yearPattern    = regexp.MustCompile(`^\d{4}$`)
)

// Day-first layouts are tried before year-first ones; month-first dates are
// not accepted.
var dobLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02"}

var (
	genders         = setOf("male", "female", "other")
	maritalStatuses = setOf("single", "married", "divorced", "widowed")
	relations       = setOf("father", "mother", "spouse", "son", "daughter", "brother", "sister", "grandfather", "grandmother", "other")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationOutcome is the result of validating one row. Registration is only
// set when Valid is true.
type ValidationOutcome struct {
	Row          int
	Valid        bool
	Errors       []FieldError
	Registration *Registration
}

func (o ValidationOutcome) Messages() []string {
	messages := make([]string, 0, len(o.Errors))
	for _, e := range o.Errors {
		messages = append(messages, e.String())
	}
	return messages
}

type fieldErrors []FieldError

func (f *fieldErrors) add(field, format string, args ...any) {
	*f = append(*f, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateRow checks a row in isolation and collects every violation. It has
// no side effects; now is only used for date-of-birth and year checks.
func ValidateRow(rec RowRecord, now time.Time) ValidationOutcome {
	var errs fieldErrors

	reg := Registration{
		FullName: strings.TrimSpace(rec.FullName),
		Email:    NormalizeEmail(rec.Email),
		Phone:    NormalizePhone(rec.Phone),
		Password: rec.Password,
		PhotoURL: strings.TrimSpace(rec.PhotoURL),
	}

	switch {
	case reg.FullName == "":
		errs.add("full_name", "full name is required")
	case utf8.RuneCountInString(reg.FullName) < 2:
		errs.add("full_name", "full name must be at least 2 characters")
	}

	email := strings.TrimSpace(rec.Email)
	switch {
	case email == "":
		errs.add("email", "email is required")
	case !emailPattern.MatchString(email):
		errs.add("email", "invalid email format")
	}

	phone := strings.TrimSpace(rec.Phone)
	switch {
	case phone == "":
		errs.add("phone", "phone is required")
	case !phonePattern.MatchString(phone):
		errs.add("phone", "invalid phone number format")
	case phoneDigits(reg.Phone) < minPhoneDigits:
		errs.add("phone", "phone number must contain at least %d digits", minPhoneDigits)
	}

	switch n := utf8.RuneCountInString(rec.Password); {
	case strings.TrimSpace(rec.Password) == "":
		errs.add("password", "password is required")
	case n < minPasswordLength || n > maxPasswordLength:
		errs.add("password", "password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}

	if reg.PhotoURL != "" && !isHTTPURL(reg.PhotoURL) {
		errs.add("photo_url", "photo url must be an absolute http(s) URL")
	}

	reg.Profile = validateProfile(rec, now, &errs)
	reg.Education = validateEducation(rec.Education, now, &errs)
	reg.Employment = validateEmployment(rec.Employment, &errs)
	reg.Family = validateFamily(rec.Family, &errs)

	out := ValidationOutcome{
		Row:    rec.Row,
		Valid:  len(errs) == 0,
		Errors: []FieldError(errs),
	}
	if out.Valid {
		out.Registration = &reg
	}
	return out
}

func validateProfile(rec RowRecord, now time.Time, errs *fieldErrors) Profile {
	profile := Profile{
		Gender:        strings.ToLower(strings.TrimSpace(rec.Gender)),
		Village:       strings.TrimSpace(rec.Village),
		Mandal:        strings.TrimSpace(rec.Mandal),
		District:      strings.TrimSpace(rec.District),
		Pincode:       strings.TrimSpace(rec.Pincode),
		Caste:         strings.TrimSpace(rec.Caste),
		Subcaste:      strings.TrimSpace(rec.Subcaste),
		MaritalStatus: strings.ToLower(strings.TrimSpace(rec.MaritalStatus)),
		NativePlace:   strings.TrimSpace(rec.NativePlace),
	}

	if raw := strings.TrimSpace(rec.DOB); raw != "" {
		dob, ok := parseDate(raw)
		switch {
		case !ok:
			errs.add("dob", "date of birth must be a valid date (YYYY-MM-DD or DD-MM-YYYY)")
		case dob.After(dateOnly(now)):
			errs.add("dob", "date of birth cannot be in the future")
		default:
			if age := ageAt(dob, now); age < minAge || age > maxAge {
				errs.add("dob", "age must be between %d and %d years", minAge, maxAge)
			} else {
				profile.DOB = &dob
			}
		}
	}

	if profile.Gender != "" && !genders[profile.Gender] {
		errs.add("gender", "gender must be one of male, female, other")
	}
	if profile.Pincode != "" && !pincodePattern.MatchString(profile.Pincode) {
		errs.add("pincode", "pincode must be exactly 6 digits")
	}
	if profile.MaritalStatus != "" && !maritalStatuses[profile.MaritalStatus] {
		errs.add("marital_status", "marital status must be one of single, married, divorced, widowed")
	}

	return profile
}

func validateEducation(slots [MaxEducationSlots]EducationSlot, now time.Time, errs *fieldErrors) []Education {
	var out []Education
	for i, slot := range slots {
		if slot.IsEmpty() {
			continue
		}
		pos := i + 1
		entry := Education{
			Position:    pos,
			Degree:      strings.TrimSpace(slot.Degree),
			Institution: strings.TrimSpace(slot.Institution),
			Grade:       strings.TrimSpace(slot.Grade),
		}
		if entry.Degree == "" {
			errs.add(slotField("education", "degree", pos), "degree is required for education entry %d", pos)
		}
		if entry.Institution == "" {
			errs.add(slotField("education", "institution", pos), "institution is required for education entry %d", pos)
		}
		if raw := strings.TrimSpace(slot.YearOfPassing); raw != "" {
			year, err := strconv.Atoi(raw)
			if !yearPattern.MatchString(raw) || err != nil || year < 1900 || year > now.Year()+10 {
				errs.add(slotField("education", "year_of_passing", pos), "year of passing must be a year between 1900 and %d", now.Year()+10)
			} else {
				entry.YearOfPassing = &year
			}
		}
		out = append(out, entry)
	}
	return out
}

func validateEmployment(slots [MaxEmploymentSlots]EmploymentSlot, errs *fieldErrors) []Employment {
	var out []Employment
	for i, slot := range slots {
		if slot.IsEmpty() {
			continue
		}
		pos := i + 1
		entry := Employment{
			Position:    pos,
			CompanyName: strings.TrimSpace(slot.CompanyName),
			Role:        strings.TrimSpace(slot.Role),
		}
		if entry.CompanyName == "" {
			errs.add(slotField("employment", "company_name", pos), "company name is required for employment entry %d", pos)
		}
		if entry.Role == "" {
			errs.add(slotField("employment", "role", pos), "role is required for employment entry %d", pos)
		}
		if raw := strings.TrimSpace(slot.YearsOfExperience); raw != "" {
			years, err := strconv.ParseFloat(raw, 64)
			if err != nil || years < 0 || years > 60 {
				errs.add(slotField("employment", "years_of_experience", pos), "years of experience must be a number between 0 and 60")
			} else {
				entry.YearsOfExperience = &years
			}
		}
		if raw := strings.TrimSpace(slot.CurrentlyWorking); raw != "" {
			working, ok := parseFlag(raw)
			if !ok {
				errs.add(slotField("employment", "currently_working", pos), "currently working must be yes or no")
			}
			entry.CurrentlyWorking = working
		}
		out = append(out, entry)
	}
	return out
}

func validateFamily(slots [MaxFamilySlots]FamilySlot, errs *fieldErrors) []FamilyMember {
	var out []FamilyMember
	for i, slot := range slots {
		if slot.IsEmpty() {
			continue
		}
		pos := i + 1
		member := FamilyMember{
			Position:   pos,
			Name:       strings.TrimSpace(slot.Name),
			Relation:   strings.ToLower(strings.TrimSpace(slot.Relation)),
			Education:  strings.TrimSpace(slot.Education),
			Profession: strings.TrimSpace(slot.Profession),
		}
		if member.Name == "" {
			errs.add(slotField("family", "name", pos), "name is required for family member %d", pos)
		}
		switch {
		case member.Relation == "":
			errs.add(slotField("family", "relation", pos), "relation is required for family member %d", pos)
		case !relations[member.Relation]:
			errs.add(slotField("family", "relation", pos), "relation %q is not allowed for family member %d", member.Relation, pos)
		}
		out = append(out, member)
	}
	return out
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps the digits and a leading plus sign, so "+91 98480-22338"
// and "+919848022338" compare equal.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func phoneDigits(normalized string) int {
	return len(strings.TrimPrefix(normalized, "+"))
}

func slotField(group, field string, pos int) string {
	return fmt.Sprintf("%s_%s_%d", group, field, pos)
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func parseFlag(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func setOf(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
