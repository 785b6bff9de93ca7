package queries

import (
	"math"
	"testing"

	"dttracker/contexts/creator-marketing/activation-service/domain/entities"
)

func TestSummarizeInvitationsAggregatesByStatus(t *testing.T) {
	activation := entities.Activation{ActivationID: "act-1", TotalBudget: 1000}
	invitations := []entities.Invitation{
		{InvitationID: "inv-1", Status: entities.InvitationStatusPending, QuotedRate: 100},
		{InvitationID: "inv-2", Status: entities.InvitationStatusAccepted, WalletLocked: true, QuotedRate: 200},
		{InvitationID: "inv-3", Status: entities.InvitationStatusCompleted, QuotedRate: 50},
	}

	summary := SummarizeInvitations(activation, invitations)
	if summary.TotalInvited != 350 {
		t.Fatalf("expected total invited 350, got %v", summary.TotalInvited)
	}
	if summary.LockedAmount != 200 {
		t.Fatalf("expected locked 200, got %v", summary.LockedAmount)
	}
	if summary.SpentAmount != 50 {
		t.Fatalf("expected spent 50, got %v", summary.SpentAmount)
	}
}

func TestSummarizeInvitationsFallsBackToActivationSpent(t *testing.T) {
	activation := entities.Activation{ActivationID: "act-1", SpentAmount: 75}
	invitations := []entities.Invitation{
		{InvitationID: "inv-1", Status: entities.InvitationStatusPending, QuotedRate: 100},
		{InvitationID: "inv-2", Status: entities.InvitationStatusDeclined, QuotedRate: 40},
	}

	summary := SummarizeInvitations(activation, invitations)
	if summary.SpentAmount != 75 {
		t.Fatalf("expected fallback spent 75, got %v", summary.SpentAmount)
	}
}

func TestSummarizeInvitationsIgnoresMalformedRates(t *testing.T) {
	activation := entities.Activation{ActivationID: "act-1"}
	invitations := []entities.Invitation{
		{InvitationID: "inv-1", Status: entities.InvitationStatusPending, QuotedRate: math.NaN()},
		{InvitationID: "inv-2", Status: entities.InvitationStatusPending, QuotedRate: math.Inf(1)},
		{InvitationID: "inv-3", Status: entities.InvitationStatusPending, QuotedRate: -10},
		{InvitationID: "inv-4", Status: entities.InvitationStatusPending, QuotedRate: 20},
	}

	summary := SummarizeInvitations(activation, invitations)
	if summary.TotalInvited != 20 {
		t.Fatalf("expected malformed rates to count as 0, got total %v", summary.TotalInvited)
	}
}

func TestSummarizeInvitationsIsOrderIndependent(t *testing.T) {
	activation := entities.Activation{ActivationID: "act-1"}
	forward := []entities.Invitation{
		{InvitationID: "inv-1", Status: entities.InvitationStatusAccepted, WalletLocked: true, QuotedRate: 110},
		{InvitationID: "inv-2", Status: entities.InvitationStatusCompleted, QuotedRate: 90},
		{InvitationID: "inv-3", Status: entities.InvitationStatusPending, QuotedRate: 30},
	}
	reversed := []entities.Invitation{forward[2], forward[1], forward[0]}

	a := SummarizeInvitations(activation, forward)
	b := SummarizeInvitations(activation, reversed)
	if a != b {
		t.Fatalf("expected identical summaries, got %+v and %+v", a, b)
	}
}
