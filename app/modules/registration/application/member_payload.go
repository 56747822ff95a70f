package registrationservice

import (
	"encoding/json"
	"fmt"
	"strings"

	teamservice "github.com/artifa-fest/registration/app/modules/team/application"
)

// rawMember tolerates the field name variants seen in submitted payloads.
type rawMember struct {
	RegisterNumber string `json:"register_number"`
	RegNo          string `json:"reg_no"`
	Name           string `json:"name"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PhoneNumber    string `json:"phone_number"`
	Department     string `json:"department"`
	Year           string `json:"year"`
}

// ParseMemberPayload decodes the members field of a submission. It accepts
// a JSON array or a single object, and repairs single-quoted payloads that
// some form builders emit. Payload problems never fail a submission: an
// unparseable payload yields no members, and each unusable entry is
// reported as a skip outcome.
func ParseMemberPayload(raw string) ([]teamservice.MemberDetails, []MemberOutcome) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" || raw == "null" {
		return nil, nil
	}

	members, err := decodeMembers(raw)
	if err != nil && strings.Contains(raw, "'") && !strings.Contains(raw, `"`) {
		members, err = decodeMembers(strings.ReplaceAll(raw, "'", `"`))
	}
	if err != nil {
		return nil, []MemberOutcome{{
			Reason: fmt.Sprintf("failed to parse members payload: %v", err),
		}}
	}

	var skipped []MemberOutcome
	details := make([]teamservice.MemberDetails, 0, len(members))
	for idx, m := range members {
		number := strings.TrimSpace(firstNonEmpty(m.RegisterNumber, m.RegNo))
		if number == "" {
			skipped = append(skipped, MemberOutcome{
				Reason: fmt.Sprintf("member %d: empty register number", idx),
			})
			continue
		}
		details = append(details, teamservice.MemberDetails{
			RegisterNumber: number,
			FullName:       firstNonEmpty(m.FullName, m.Name),
			Email:          m.Email,
			PhoneNumber:    firstNonEmpty(m.PhoneNumber, m.Phone),
			Department:     MapDepartment(m.Department),
			Year:           MapYear(m.Year),
		})
	}
	return details, skipped
}

func decodeMembers(raw string) ([]rawMember, error) {
	if strings.HasPrefix(raw, "{") {
		var single rawMember
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, err
		}
		return []rawMember{single}, nil
	}
	var members []rawMember
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		return nil, err
	}
	return members, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// MapYear folds the year-of-study variants submitted by forms into the
// single digit the storage layer expects. Anything outside years 1-4
// defaults to "1".
func MapYear(year string) string {
	switch strings.ToLower(strings.TrimSpace(year)) {
	case "1", "i", "first", "1st":
		return "1"
	case "2", "ii", "second", "2nd":
		return "2"
	case "3", "iii", "third", "3rd":
		return "3"
	case "4", "iv", "fourth", "4th":
		return "4"
	default:
		return "1"
	}
}

// departmentAliases maps the spelled-out department names seen in
// submissions to their short codes.
var departmentAliases = map[string]string{
	"COMPUTER SCIENCE":        "CSE",
	"COMPUTER SCIENCE ENGG":   "CSE",
	"INFORMATION TECHNOLOGY":  "IT",
	"ELECTRONICS":             "ECE",
	"ELECTRONICS AND COMM":    "ECE",
	"ELECTRICAL":              "EEE",
	"MECHANICAL":              "MECH",
	"CIVIL ENGINEERING":       "CIVIL",
	"ARTIFICIAL INTELLIGENCE": "AIDS",
	"AI AND DATA SCIENCE":     "AIDS",
	"AI & DS":                 "AIDS",
}

// MapDepartment normalizes a department to an uppercase short code that
// fits the storage column. Empty input stays empty so create-time
// placeholders can apply.
func MapDepartment(department string) string {
	normalized := strings.ToUpper(strings.TrimSpace(department))
	if normalized == "" {
		return ""
	}
	if code, ok := departmentAliases[normalized]; ok {
		return code
	}
	if len(normalized) > 10 {
		return normalized[:10]
	}
	return normalized
}
