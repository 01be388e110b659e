package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Campaign.validate(); err != nil {
		return fmt.Errorf("campaign: %w", err)
	}

	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	switch c.Notify.Sink {
	case NotifySinkInApp, NotifySinkLog:
	default:
		return fmt.Errorf("notify.sink must be %q or %q (got %q)", NotifySinkInApp, NotifySinkLog, c.Notify.Sink)
	}

	return nil
}

func (c *CampaignConfig) validate() error {
	if c.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length must be > 0 (got %d)", c.MaxTitleLength)
	}
	if c.MaxDescriptionLength <= 0 {
		return fmt.Errorf("max_description_length must be > 0 (got %d)", c.MaxDescriptionLength)
	}
	if c.MaxEndDateHorizonDays <= 0 {
		return fmt.Errorf("max_end_date_horizon_days must be > 0 (got %d)", c.MaxEndDateHorizonDays)
	}

	min, err := decimal.NewFromString(c.MinGoalAmount)
	if err != nil {
		return fmt.Errorf("min_goal_amount: invalid decimal %q: %w", c.MinGoalAmount, err)
	}
	if !min.IsPositive() {
		return fmt.Errorf("min_goal_amount must be > 0 (got %s)", min)
	}

	return nil
}

func (s *SchedulerConfig) validate() error {
	if s.ReminderInterval <= 0 {
		return fmt.Errorf("reminder_interval must be > 0 (got %v)", s.ReminderInterval)
	}
	if s.ExpireInterval <= 0 {
		return fmt.Errorf("expire_interval must be > 0 (got %v)", s.ExpireInterval)
	}
	if s.SweepBatchSize <= 0 {
		return fmt.Errorf("sweep_batch_size must be > 0 (got %d)", s.SweepBatchSize)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// MinGoal returns the parsed minimum goal amount. Validate must have
// succeeded first; an unparseable value falls back to 1.
func (c *CampaignConfig) MinGoal() decimal.Decimal {
	min, err := decimal.NewFromString(c.MinGoalAmount)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return min
}

// Location returns the parsed reference timezone. Validate must have
// succeeded first; an unparseable value falls back to UTC.
func (s *SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
