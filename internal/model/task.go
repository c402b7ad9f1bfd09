package model

import "time"

// TaskKind classifies how a derived task should be presented.
type TaskKind string

const (
	KindCritical TaskKind = "critical"
	KindUrgent   TaskKind = "urgent"
	KindReminder TaskKind = "reminder"
)

// Urgency is the UI priority tier of a task, independent of its kind.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Category groups tasks by the domain area that produced them.
const (
	CategoryShift     = "shift"
	CategoryVolunteer = "volunteer"
	CategoryTeam      = "team"
	CategoryApproval  = "approval"
)

// Task is a synthesized, role-scoped actionable item derived from domain
// records. Tasks are never mutated after creation; a changed condition is
// represented by re-deriving the whole list.
type Task struct {
	// ID is unique within the owning role's list. Assigned on insert
	// when empty; callers may supply one for external correlation.
	ID string `json:"id"`

	// Role is the consumer category this task was derived for.
	Role Role `json:"role"`

	// Kind classifies the task (critical, urgent, reminder).
	Kind TaskKind `json:"kind"`

	// Category is a free-form grouping tag (shift, volunteer, team, approval).
	Category string `json:"category"`

	// Title is the short human-readable summary.
	Title string `json:"title"`

	// Description is the full explanatory text.
	Description string `json:"description"`

	// Count is the number of underlying records contributing to this task.
	Count int `json:"count"`

	// Urgency is the UI priority tier (high, medium, low).
	Urgency Urgency `json:"urgency"`

	// Action is the label for the UI affordance that resolves this task.
	Action string `json:"action"`

	// Icon and Color are presentation hints for the rendering layer.
	Icon  string `json:"icon"`
	Color string `json:"color"`

	// CreatedAt is when this task was derived.
	CreatedAt time.Time `json:"created_at"`

	// RelatedData holds the ids of the domain records that produced this
	// task, so the presentation layer can deep-link into them.
	RelatedData []string `json:"related_data,omitempty"`
}
