package domain

// CampaignStatus represents the lifecycle state of a fundraising campaign.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "DRAFT"
	CampaignStatusPending   CampaignStatus = "PENDING"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusRejected  CampaignStatus = "REJECTED"
	CampaignStatusSuspended CampaignStatus = "SUSPENDED"
	CampaignStatusClosed    CampaignStatus = "CLOSED"
	CampaignStatusSuccess   CampaignStatus = "SUCCESS"
)

func (s CampaignStatus) String() string { return string(s) }

func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusPending, CampaignStatusActive,
		CampaignStatusRejected, CampaignStatusSuspended, CampaignStatusClosed,
		CampaignStatusSuccess:
		return true
	}
	return false
}

// IsFinal reports whether the status forbids further content edits and
// transitions. CLOSED and SUCCESS are set by the expiration sweep; REJECTED
// by an administrator.
func (s CampaignStatus) IsFinal() bool {
	switch s {
	case CampaignStatusRejected, CampaignStatusClosed, CampaignStatusSuccess:
		return true
	}
	return false
}

// PledgeStatus represents the lifecycle state of a pledge.
type PledgeStatus string

const (
	PledgeStatusPending   PledgeStatus = "PENDING"
	PledgeStatusPaid      PledgeStatus = "PAID"
	PledgeStatusCancelled PledgeStatus = "CANCELLED"
)

func (s PledgeStatus) String() string { return string(s) }

func (s PledgeStatus) IsValid() bool {
	switch s {
	case PledgeStatusPending, PledgeStatusPaid, PledgeStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the pledge can no longer change status.
func (s PledgeStatus) IsTerminal() bool {
	return s == PledgeStatusPaid || s == PledgeStatusCancelled
}

// CountsTowardTotal reports whether a pledge in this status contributes to
// the campaign's collected total. A pledge counts as soon as it is made;
// only cancellation removes it.
func (s PledgeStatus) CountsTowardTotal() bool {
	return s == PledgeStatusPending || s == PledgeStatusPaid
}

// NotificationCategory identifies the kind of entity a notification is about.
type NotificationCategory string

const (
	NotificationCategoryCampaign NotificationCategory = "CAMPAIGN"
	NotificationCategoryPledge   NotificationCategory = "PLEDGE"
)

func (c NotificationCategory) String() string { return string(c) }

func (c NotificationCategory) IsValid() bool {
	switch c {
	case NotificationCategoryCampaign, NotificationCategoryPledge:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
