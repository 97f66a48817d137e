package state

import (
	"time"
)

// Category classifies where an event's time goes.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategorySocial   Category = "social"
	CategoryRest     Category = "rest"
)

// Priority of an event or task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// rank orders priorities for severity derivation. Unknown values rank lowest.
func (p Priority) rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Higher returns the higher-ranked of two priorities.
func (p Priority) Higher(other Priority) Priority {
	if other.rank() > p.rank() {
		return other
	}
	return p
}

// TaskStatus tracks the lifecycle of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Event is a scheduled calendar entry, snapshotted from the calendar store.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Category   Category  `json:"category"`
	Priority   Priority  `json:"priority"`
	Location   string    `json:"location,omitempty"`
	Delegate   string    `json:"delegate,omitempty"`
	Recurrence string    `json:"recurrence,omitempty"`
}

// Duration returns the event's length.
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Delegated reports whether the event has been handed to someone else.
// Delegated events no longer occupy the owner's time.
func (e Event) Delegated() bool {
	return e.Delegate != ""
}

// Task is a unit of work from the inbox store.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Status           TaskStatus `json:"status"`
	Priority         Priority   `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Delegate         string     `json:"delegate,omitempty"`
	Recurrence       string     `json:"recurrence,omitempty"`
}

// TimeBudget is a per-category allowance supplied by the budget store.
type TimeBudget struct {
	Category             Category `json:"category"`
	DailyBudgetSeconds   int64    `json:"daily_budget_seconds"`
	WeeklyBudgetSeconds  int64    `json:"weekly_budget_seconds"`
	MonthlyBudgetSeconds int64    `json:"monthly_budget_seconds"`
}

// SystemMetrics holds the derived health numbers for a state snapshot.
// All values are heuristics: simple, monotone and bounded.
type SystemMetrics struct {
	TotalScheduledHours float64 `json:"total_scheduled_hours"`
	TotalFreeHours      float64 `json:"total_free_hours"`
	CompletionRate      float64 `json:"completion_rate"`
	ProductivityScore   float64 `json:"productivity_score"`
	FragmentationIndex  float64 `json:"fragmentation_index"`
	WorkLifeBalance     float64 `json:"work_life_balance"`
	StressLevel         float64 `json:"stress_level"` // 0-10
	EnergyBalance       float64 `json:"energy_balance"`
}

// TimeDistribution breaks scheduled hours down by category.
type TimeDistribution struct {
	HoursByCategory map[Category]float64 `json:"hours_by_category"`
	ShareByCategory map[Category]float64 `json:"share_by_category"`
}

// ConflictType classifies a detected incompatibility.
type ConflictType string

const (
	ConflictTime       ConflictType = "time"
	ConflictResource   ConflictType = "resource"
	ConflictPriority   ConflictType = "priority"
	ConflictDependency ConflictType = "dependency"
)

// Severity grades a conflict.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Conflict is a detected incompatibility between two or more items.
// Conflicts are data, not errors: they are produced fresh on every
// detection pass and never mutated.
type Conflict struct {
	ID                  string       `json:"id"`
	Type                ConflictType `json:"type"`
	Severity            Severity     `json:"severity"`
	Items               []string     `json:"items"`
	Description         string       `json:"description"`
	SuggestedResolution string       `json:"suggested_resolution,omitempty"`
}

// RiskCategory classifies an inferred adverse condition.
type RiskCategory string

const (
	RiskDeadline     RiskCategory = "deadline"
	RiskOverload     RiskCategory = "overload"
	RiskQuality      RiskCategory = "quality"
	RiskHealth       RiskCategory = "health"
	RiskRelationship RiskCategory = "relationship"
)

// Risk is a probabilistic adverse condition inferred from a state.
// Score is an advisory ranking (probability x impact), not a probability.
type Risk struct {
	ID          string       `json:"id"`
	Category    RiskCategory `json:"category"`
	Probability float64      `json:"probability"` // [0,1]
	Impact      float64      `json:"impact"`      // [1,10]
	Score       float64      `json:"score"`
	Description string       `json:"description"`
	Mitigation  string       `json:"mitigation,omitempty"`
}

// SystemState is a timestamped snapshot of the schedule, tasks and budgets,
// together with everything derived from them. The derived fields (Metrics,
// Distribution, Conflicts, Risks) are never hand-set; they are recomputed
// wholesale whenever events or tasks change.
type SystemState struct {
	Timestamp    time.Time        `json:"timestamp"`
	Events       []Event          `json:"events"`
	Tasks        []Task           `json:"tasks"`
	Budgets      []TimeBudget     `json:"budgets"`
	Metrics      SystemMetrics    `json:"metrics"`
	Distribution TimeDistribution `json:"distribution"`
	Conflicts    []Conflict       `json:"conflicts"`
	Risks        []Risk           `json:"risks"`
}

// FindEvent returns the index of the event with the given id, or -1.
func (s *SystemState) FindEvent(id string) int {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the index of the task with the given id, or -1.
func (s *SystemState) FindTask(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
