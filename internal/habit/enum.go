package habit

type Kind string

const (
	KindPersonal Kind = "personal"
	KindShared   Kind = "shared"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
	// StatusPending is only held by a shared habit nobody has accepted yet.
	StatusPending Status = "pending"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusCompleted, StatusPending}

type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "pending"
	ParticipantAccepted ParticipantStatus = "accepted"
	ParticipantRejected ParticipantStatus = "rejected"
	ParticipantLeft     ParticipantStatus = "left"
)

type CompletionStatus string

const (
	CompletionComplete   CompletionStatus = "complete"
	CompletionIncomplete CompletionStatus = "incomplete"
	CompletionSkipped    CompletionStatus = "skipped"
)

func (s CompletionStatus) IsValid() bool {
	switch s {
	case CompletionComplete, CompletionIncomplete, CompletionSkipped:
		return true
	}
	return false
}
