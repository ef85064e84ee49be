package domain

// Member lifecycle statuses. Status is mutated by an admin action or by the
// expiry sweep; members are never deleted.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// ValidStatus reports whether s is one of the four lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// RegisterMemberInput carries the fields set once at registration.
type RegisterMemberInput struct {
	OrganizationName string
	OrganizationType string
	ContactNumber    string
	Email            string
}

// Profile list sort keys accepted by the reader.
const (
	SortByID      = "id"
	SortByName    = "name"
	SortByStatus  = "status"
	SortByCreated = "created"
)

// SortColumn resolves a caller-facing sort key to its column. The bool is
// false for unknown keys; they are rejected before any query runs.
func SortColumn(key string) (string, bool) {
	switch key {
	case SortByID:
		return "id", true
	case SortByName:
		return "organization_name", true
	case SortByStatus:
		return "status", true
	case SortByCreated:
		return "c_date", true
	}
	return "", false
}
