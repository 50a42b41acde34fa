package entity

// StatusType identifies a lingering effect
type StatusType int

const (
	StatusNone StatusType = iota
	StatusBurning
)

// String returns the status name as used in config files
func (s StatusType) String() string {
	switch s {
	case StatusBurning:
		return "burning"
	default:
		return "none"
	}
}

// ParseStatus converts a config name to a StatusType
func ParseStatus(name string) (StatusType, bool) {
	switch name {
	case "":
		return StatusNone, true
	case "burning":
		return StatusBurning, true
	default:
		return StatusNone, false
	}
}

// StatusEffect is a status with the number of turn starts it still applies to
type StatusEffect struct {
	Type     StatusType
	Duration int
}
