package entities

import (
	"math"
	"strings"
	"time"
)

type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusDeclined  InvitationStatus = "declined"
	InvitationStatusExpired   InvitationStatus = "expired"
	InvitationStatusCompleted InvitationStatus = "completed"
	InvitationStatusCancelled InvitationStatus = "cancelled"
)

type Invitation struct {
	InvitationID string
	ActivationID string
	CreatorID    string
	QuotedRate   float64
	Currency     string
	Status       InvitationStatus
	WalletLocked bool
	BrandNotes   string
	Deliverable  string
	InvitedAt    time.Time
	RespondedAt  *time.Time
}

// IsTerminal reports whether no further transition is legal.
// Cancellation is the only brand-side exit and it is gone too once reached.
func (i Invitation) IsTerminal() bool {
	switch i.Status {
	case InvitationStatusDeclined, InvitationStatusExpired,
		InvitationStatusCompleted, InvitationStatusCancelled:
		return true
	default:
		return false
	}
}

func (i Invitation) CanCancel() bool {
	return i.Status == InvitationStatusPending || i.Status == InvitationStatusAccepted
}

func (i Invitation) ValidateBasics() bool {
	return strings.TrimSpace(i.ActivationID) != "" &&
		strings.TrimSpace(i.CreatorID) != "" &&
		i.QuotedRate > 0 &&
		strings.TrimSpace(i.Currency) != ""
}

// SafeRate coerces malformed rates to 0 so aggregation never propagates NaN.
func (i Invitation) SafeRate() float64 {
	if math.IsNaN(i.QuotedRate) || math.IsInf(i.QuotedRate, 0) || i.QuotedRate < 0 {
		return 0
	}
	return i.QuotedRate
}

func IsSupportedInvitationStatus(value InvitationStatus) bool {
	switch value {
	case InvitationStatusPending, InvitationStatusAccepted, InvitationStatusDeclined,
		InvitationStatusExpired, InvitationStatusCompleted, InvitationStatusCancelled:
		return true
	default:
		return false
	}
}
