package campaign

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/domain"
)

// CreateInput holds the parameters for creating a campaign draft.
type CreateInput struct {
	Title         string
	Description   string
	GoalAmount    decimal.Decimal
	EndDate       time.Time
	CurrentStep   int
	BeneficiaryID *uuid.UUID
	CategoryID    *uuid.UUID
	CoverImageURL *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate(cfg config.CampaignConfig, now time.Time) error {
	var errs []domain.FieldError

	errs = append(errs, validateTitle(strings.TrimSpace(i.Title), cfg)...)
	errs = append(errs, validateDescription(i.Description, cfg)...)
	errs = append(errs, validateGoal(i.GoalAmount, cfg)...)
	errs = append(errs, validateEndDate(i.EndDate, cfg, now)...)

	if i.CurrentStep < domain.CampaignMinStep || i.CurrentStep > domain.CampaignMaxStep {
		errs = append(errs, domain.FieldError{
			Field:   "current_step",
			Message: fmt.Sprintf("must be between %d and %d", domain.CampaignMinStep, domain.CampaignMaxStep),
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the parameters for updating a campaign. Nil fields are
// left unchanged.
type UpdateInput struct {
	CampaignID    uuid.UUID
	Title         *string
	Description   *string
	GoalAmount    *decimal.Decimal
	EndDate       *time.Time
	CurrentStep   *int
	CategoryID    *uuid.UUID
	CoverImageURL *string
}

// Validate checks all provided fields and collects all errors.
func (i UpdateInput) Validate(cfg config.CampaignConfig, now time.Time) error {
	var errs []domain.FieldError

	if i.CampaignID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "campaign_id", Message: "required"})
	}
	if i.Title != nil {
		errs = append(errs, validateTitle(strings.TrimSpace(*i.Title), cfg)...)
	}
	if i.Description != nil {
		errs = append(errs, validateDescription(*i.Description, cfg)...)
	}
	if i.GoalAmount != nil {
		errs = append(errs, validateGoal(*i.GoalAmount, cfg)...)
	}
	if i.EndDate != nil {
		errs = append(errs, validateEndDate(*i.EndDate, cfg, now)...)
	}
	if i.CurrentStep != nil && (*i.CurrentStep < domain.CampaignMinStep || *i.CurrentStep > domain.CampaignMaxStep) {
		errs = append(errs, domain.FieldError{
			Field:   "current_step",
			Message: fmt.Sprintf("must be between %d and %d", domain.CampaignMinStep, domain.CampaignMaxStep),
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing campaigns.
type ListInput struct {
	Statuses  []domain.CampaignStatus
	CreatorID *uuid.UUID
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	for _, s := range i.Statuses {
		if !s.IsValid() {
			errs = append(errs, domain.FieldError{Field: "statuses", Message: fmt.Sprintf("unknown status %q", s)})
		}
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateTitle(title string, cfg config.CampaignConfig) []domain.FieldError {
	var errs []domain.FieldError
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > cfg.MaxTitleLength {
		errs = append(errs, domain.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("max %d characters", cfg.MaxTitleLength),
		})
	}
	return errs
}

func validateDescription(description string, cfg config.CampaignConfig) []domain.FieldError {
	if len(description) > cfg.MaxDescriptionLength {
		return []domain.FieldError{{
			Field:   "description",
			Message: fmt.Sprintf("max %d characters", cfg.MaxDescriptionLength),
		}}
	}
	return nil
}

func validateGoal(goal decimal.Decimal, cfg config.CampaignConfig) []domain.FieldError {
	var errs []domain.FieldError
	if !goal.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "goal_amount", Message: "must be positive"})
	} else if goal.LessThan(cfg.MinGoal()) {
		errs = append(errs, domain.FieldError{
			Field:   "goal_amount",
			Message: fmt.Sprintf("must be at least %s", cfg.MinGoal()),
		})
	}
	return errs
}

func validateEndDate(endDate time.Time, cfg config.CampaignConfig, now time.Time) []domain.FieldError {
	var errs []domain.FieldError
	if !endDate.After(now) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must be in the future"})
	}
	horizon := now.AddDate(0, 0, cfg.MaxEndDateHorizonDays)
	if endDate.After(horizon) {
		errs = append(errs, domain.FieldError{
			Field:   "end_date",
			Message: fmt.Sprintf("max %d days from now", cfg.MaxEndDateHorizonDays),
		})
	}
	return errs
}
