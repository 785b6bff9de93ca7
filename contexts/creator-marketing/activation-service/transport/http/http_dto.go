package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InvitationRowRequest struct {
	CreatorID   string  `json:"creator_id"`
	QuotedRate  float64 `json:"quoted_rate"`
	Currency    string  `json:"currency"`
	BrandNotes  string  `json:"notes,omitempty"`
	Deliverable string  `json:"deliverable,omitempty"`
}

type CreateActivationRequest struct {
	Title       string                 `json:"title"`
	Brief       string                 `json:"brief"`
	Deadline    string                 `json:"deadline"`
	TotalBudget float64                `json:"total_budget"`
	Visibility  string                 `json:"visibility"`
	Rows        []InvitationRowRequest `json:"invitations,omitempty"`
}

type CreateActivationResponse struct {
	Activation  ActivationDTO   `json:"activation"`
	Invitations []InvitationDTO `json:"invitations"`
	Replayed    bool            `json:"replayed"`
}

type CreateInvitationsRequest struct {
	Rows []InvitationRowRequest `json:"rows"`
}

type CreateInvitationsResponse struct {
	Invitations []InvitationDTO `json:"invitations"`
	Replayed    bool            `json:"replayed"`
}

type AcceptInvitationResponse struct {
	Success         bool    `json:"success"`
	InvitationID    string  `json:"invitation_id"`
	LockedAmount    float64 `json:"locked_amount"`
	ActivationTitle string  `json:"activation_title,omitempty"`
}

type DeclineInvitationResponse struct {
	Success      bool   `json:"success"`
	InvitationID string `json:"invitation_id"`
}

type ReleasePaymentResponse struct {
	Success       bool    `json:"success"`
	InvitationID  string  `json:"invitation_id"`
	PaymentAmount float64 `json:"payment_amount"`
}

type CancelInvitationResponse struct {
	Success        bool    `json:"success"`
	InvitationID   string  `json:"invitation_id"`
	Refunded       float64 `json:"refunded"`
}

type ActivationDTO struct {
	ActivationID string  `json:"activation_id"`
	BrandID      string  `json:"brand_id"`
	Title        string  `json:"title"`
	Brief        string  `json:"brief"`
	Deadline     string  `json:"deadline,omitempty"`
	TotalBudget  float64 `json:"total_budget"`
	SpentAmount  float64 `json:"spent_amount"`
	Status       string  `json:"status"`
	Visibility   string  `json:"visibility"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	CompletedAt  string  `json:"completed_at,omitempty"`
	CancelledAt  string  `json:"cancelled_at,omitempty"`
}

type InvitationDTO struct {
	InvitationID string  `json:"invitation_id"`
	ActivationID string  `json:"activation_id"`
	CreatorID    string  `json:"creator_id"`
	QuotedRate   float64 `json:"quoted_rate"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	WalletLocked bool    `json:"wallet_locked"`
	BrandNotes   string  `json:"notes,omitempty"`
	Deliverable  string  `json:"deliverable,omitempty"`
	InvitedAt    string  `json:"invited_at"`
	RespondedAt  string  `json:"responded_at,omitempty"`
}

type GetActivationResponse struct {
	Activation ActivationDTO `json:"activation"`
}

type ListActivationsResponse struct {
	Items []ActivationDTO `json:"items"`
}

type ListInvitationsResponse struct {
	Items []InvitationDTO `json:"items"`
}

type NotificationDTO struct {
	NotificationID string  `json:"notification_id"`
	InvitationID   string  `json:"invitation_id"`
	ActivationID   string  `json:"activation_id"`
	Kind           string  `json:"kind"`
	Amount         float64 `json:"amount"`
	OccurredAt     string  `json:"occurred_at"`
}

type ListNotificationsResponse struct {
	Items []NotificationDTO `json:"items"`
}

type BudgetSummaryResponse struct {
	ActivationID string  `json:"activation_id"`
	TotalInvited float64 `json:"total_invited"`
	LockedAmount float64 `json:"locked_amount"`
	SpentAmount  float64 `json:"spent_amount"`
}

type StatusActionRequest struct {
	Action string `json:"action"`
}
