package enums

import "fmt"

// OptionType determines how an option's values are captured in the admin UI.
type OptionType string

const (
	OptionTypeSelect OptionType = "select"
	OptionTypeColor  OptionType = "color"
	OptionTypeText   OptionType = "text"
)

var validOptionTypes = []OptionType{
	OptionTypeSelect,
	OptionTypeColor,
	OptionTypeText,
}

// String implements fmt.Stringer.
func (t OptionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OptionType.
func (t OptionType) IsValid() bool {
	for _, candidate := range validOptionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOptionType converts raw input into an OptionType.
func ParseOptionType(value string) (OptionType, error) {
	for _, candidate := range validOptionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option type %q", value)
}
