package entities

import (
	"strings"
	"time"
)

type ActivationStatus string
type ActivationVisibility string

const (
	ActivationStatusDraft     ActivationStatus = "draft"
	ActivationStatusLive      ActivationStatus = "live"
	ActivationStatusCompleted ActivationStatus = "completed"
	ActivationStatusCancelled ActivationStatus = "cancelled"

	ActivationVisibilityPrivate   ActivationVisibility = "private"
	ActivationVisibilityCommunity ActivationVisibility = "community"
)

type Activation struct {
	ActivationID string
	BrandID      string
	Title        string
	Brief        string
	DeadlineAt   *time.Time
	TotalBudget  float64
	SpentAmount  float64
	Status       ActivationStatus
	Visibility   ActivationVisibility
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

func (a Activation) IsOpenForInvitations() bool {
	return a.Status == ActivationStatusDraft || a.Status == ActivationStatusLive
}

func (a Activation) ValidateBasics() bool {
	title := strings.TrimSpace(a.Title)
	brief := strings.TrimSpace(a.Brief)

	return title != "" &&
		len(title) >= 3 &&
		len(title) <= 120 &&
		brief != "" &&
		len(brief) <= 5000 &&
		a.TotalBudget > 0 &&
		IsSupportedVisibility(a.Visibility)
}

func IsSupportedVisibility(value ActivationVisibility) bool {
	switch value {
	case ActivationVisibilityPrivate, ActivationVisibilityCommunity:
		return true
	default:
		return false
	}
}

func IsSupportedStatus(value ActivationStatus) bool {
	switch value {
	case ActivationStatusDraft, ActivationStatusLive, ActivationStatusCompleted, ActivationStatusCancelled:
		return true
	default:
		return false
	}
}
