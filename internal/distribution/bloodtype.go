package distribution

import "strings"

// BloodType identifies one of the four independently simulated blood groups.
type BloodType string

const (
	TypeA  BloodType = "A"
	TypeB  BloodType = "B"
	TypeAB BloodType = "AB"
	TypeO  BloodType = "O"
)

// BloodTypes returns the canonical ordering used for draws, rendered tables
// and ranking tie-breaks.
func BloodTypes() []BloodType {
	return []BloodType{TypeA, TypeB, TypeAB, TypeO}
}

// ParseBloodType maps free-form input ("ab", " O ") to a known blood type.
func ParseBloodType(s string) (BloodType, bool) {
	switch BloodType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeA:
		return TypeA, true
	case TypeB:
		return TypeB, true
	case TypeAB:
		return TypeAB, true
	case TypeO:
		return TypeO, true
	}
	return "", false
}
