package pledge

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/domain"
)

// CreateInput holds the parameters for making a pledge.
type CreateInput struct {
	CampaignID  uuid.UUID
	Amount      decimal.Decimal
	Message     *string
	IsAnonymous bool
}

// Validate checks all fields and collects all errors. Amount positivity is
// checked separately in Create so it maps to ErrInvalidAmount.
func (i CreateInput) Validate(cfg config.CampaignConfig) error {
	var errs []domain.FieldError

	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	errs = append(errs, validateMessage(i.Message, cfg)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// EditInput holds the parameters for editing a pledge. Nil fields are left
// unchanged.
type EditInput struct {
	PledgeID    uuid.UUID
	Amount      *decimal.Decimal
	Message     *string
	IsAnonymous *bool
}

// Validate checks all provided fields and collects all errors.
func (i EditInput) Validate(cfg config.CampaignConfig) error {
	var errs []domain.FieldError

	if i.PledgeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "pledge_id", Message: "required"})
	}
	errs = append(errs, validateMessage(i.Message, cfg)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateMessage(message *string, cfg config.CampaignConfig) []domain.FieldError {
	if message == nil {
		return nil
	}
	if len(strings.TrimSpace(*message)) > cfg.MaxMessageLength {
		return []domain.FieldError{{
			Field:   "message",
			Message: fmt.Sprintf("max %d characters", cfg.MaxMessageLength),
		}}
	}
	return nil
}
