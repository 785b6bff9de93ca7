package entities

import "time"

type NotificationKind string

const (
	NotificationKindInvitationAccepted  NotificationKind = "invitation_accepted"
	NotificationKindInvitationCompleted NotificationKind = "invitation_completed"
	NotificationKindInvitationCancelled NotificationKind = "invitation_cancelled"
)

// InvitationNotification is the feed projection built from invitation
// lifecycle events. Accepted notifies the brand; completed and cancelled
// notify the creator.
type InvitationNotification struct {
	NotificationID string
	RecipientID    string
	InvitationID   string
	ActivationID   string
	Kind           NotificationKind
	Amount         float64
	OccurredAt     time.Time
	CreatedAt      time.Time
}
