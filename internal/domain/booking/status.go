package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses hold their resource. Only these take part in overlap checks.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted}

func (s Status) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ActiveStatusStrings is ActiveStatuses in the form the storage layer binds.
func ActiveStatusStrings() []string {
	out := make([]string, 0, len(ActiveStatuses))
	for _, s := range ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// ===============================
// Booking Type
// ===============================

type Type string

const (
	TypeVenue  Type = "venue"
	TypeCoach  Type = "coach"
	TypeCourse Type = "course"
)

// ResourceKind names what a conflict check runs against.
type ResourceKind string

const (
	ResourceVenue ResourceKind = "venue"
	ResourceCoach ResourceKind = "coach"
)

// ===============================
// Actions / Actors
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no_show"
	ActionComplete Action = "complete"
)

func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionConfirm, ActionCancel, ActionNoShow, ActionComplete:
		return a, true
	}
	return "", false
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor is whoever asks for a transition.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
