package domain

import (
	"fmt"
	"time"
)

// The types below describe JSONB columns. Zero values are replaced by the
// documented defaults through WithDefaults before a row is written.

// SessionSettings is user_security_settings.session_settings
type SessionSettings struct {
	// TimeoutMinutes is the idle timeout of a session (default 60)
	TimeoutMinutes int `json:"timeout_minutes"`
	// MaxConcurrentSessions caps simultaneous sessions (default 5)
	MaxConcurrentSessions int `json:"max_concurrent_sessions"`
	// RememberDevice keeps trusted devices signed in
	RememberDevice bool `json:"remember_device"`
	// ReauthForSensitive requires a fresh login for sensitive operations
	ReauthForSensitive bool `json:"reauth_for_sensitive"`
}

// WithDefaults fills unset fields
func (s SessionSettings) WithDefaults() SessionSettings {
	if s.TimeoutMinutes == 0 {
		s.TimeoutMinutes = 60
	}
	if s.MaxConcurrentSessions == 0 {
		s.MaxConcurrentSessions = 5
	}
	return s
}

// Validate checks the settings are usable
func (s SessionSettings) Validate() error {
	if s.TimeoutMinutes < 5 || s.TimeoutMinutes > 24*60 {
		return fmt.Errorf("%w: session timeout must be between 5 and 1440 minutes", ErrInvalidInput)
	}
	if s.MaxConcurrentSessions < 1 || s.MaxConcurrentSessions > 50 {
		return fmt.Errorf("%w: max concurrent sessions must be between 1 and 50", ErrInvalidInput)
	}
	return nil
}

// SecurityPreferences is user_security_settings.security_preferences
type SecurityPreferences struct {
	// LoginAlerts sends a notification on every new login (default true)
	LoginAlerts *bool `json:"login_alerts,omitempty"`
	// TrustedIPs are CIDR blocks exempt from suspicious-login checks
	TrustedIPs []string `json:"trusted_ips,omitempty"`
	// PasswordExpiryDays forces a password change; 0 disables expiry
	PasswordExpiryDays int `json:"password_expiry_days"`
}

// WithDefaults fills unset fields
func (s SecurityPreferences) WithDefaults() SecurityPreferences {
	if s.LoginAlerts == nil {
		on := true
		s.LoginAlerts = &on
	}
	return s
}

// Validate checks the preferences are usable
func (s SecurityPreferences) Validate() error {
	if s.PasswordExpiryDays < 0 || s.PasswordExpiryDays > 365 {
		return fmt.Errorf("%w: password expiry must be between 0 and 365 days", ErrInvalidInput)
	}
	return nil
}

// NotificationSettings is user_preferences.notification_settings
type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
	// Digest is one of daily, weekly or never (default daily)
	Digest string `json:"digest"`
}

// WithDefaults fills unset fields
func (s NotificationSettings) WithDefaults() NotificationSettings {
	if s.Digest == "" {
		s.Digest = "daily"
	}
	return s
}

// Validate checks the settings are usable
func (s NotificationSettings) Validate() error {
	if !oneOf(s.Digest, "daily", "weekly", "never") {
		return fmt.Errorf("%w: unknown digest frequency %q", ErrInvalidInput, s.Digest)
	}
	return nil
}

// DisplaySettings is user_preferences.display_settings
type DisplaySettings struct {
	// DateFormat is a layout understood by the clients (default YYYY-MM-DD)
	DateFormat string `json:"date_format"`
	// Clock is 12h or 24h (default 24h)
	Clock string `json:"clock"`
	// PageSize is the default list page size (default 25)
	PageSize int `json:"page_size"`
}

// WithDefaults fills unset fields
func (s DisplaySettings) WithDefaults() DisplaySettings {
	if s.DateFormat == "" {
		s.DateFormat = "YYYY-MM-DD"
	}
	if s.Clock == "" {
		s.Clock = "24h"
	}
	if s.PageSize == 0 {
		s.PageSize = 25
	}
	return s
}

// Validate checks the settings are usable
func (s DisplaySettings) Validate() error {
	if !oneOf(s.Clock, "12h", "24h") {
		return fmt.Errorf("%w: unknown clock format %q", ErrInvalidInput, s.Clock)
	}
	if s.PageSize < 5 || s.PageSize > 200 {
		return fmt.Errorf("%w: page size must be between 5 and 200", ErrInvalidInput)
	}
	return nil
}

// OnboardingData is user_onboarding.onboarding_data
type OnboardingData struct {
	// Source records how the user found the product
	Source string `json:"source,omitempty"`
	// Answers holds free-form questionnaire answers keyed by question id
	Answers map[string]string `json:"answers,omitempty"`
	// SkippedSteps are steps the user chose to skip
	SkippedSteps []string `json:"skipped_steps,omitempty"`
}

// OnboardingSteps is the ordered onboarding flow
var OnboardingSteps = []string{"profile", "preferences", "security", "team", "import"}

// PermissionConditions is permissions.conditions. The database stores the
// grant only; the evaluator applies these at check time.
type PermissionConditions struct {
	// OwnOnly restricts the permission to resources owned by the user
	OwnOnly bool `json:"own_only,omitempty"`
	// EntityTypes restricts the permission to the listed entity types
	EntityTypes []EntityType `json:"entity_types,omitempty"`
	// RequireMFA restricts the permission to sessions with MFA
	RequireMFA bool `json:"require_mfa,omitempty"`
}

// Validate checks every listed entity type is known
func (c PermissionConditions) Validate() error {
	for _, t := range c.EntityTypes {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown entity type %q in conditions", ErrInvalidInput, t)
		}
	}
	return nil
}

// TimeRestrictions is permissions.time_restrictions: a weekly window in an
// IANA time zone. An empty value places no restriction.
type TimeRestrictions struct {
	// Timezone is an IANA zone name (default UTC)
	Timezone string `json:"timezone,omitempty"`
	// Weekdays uses ISO numbering, 1 = Monday through 7 = Sunday
	Weekdays []int `json:"weekdays,omitempty"`
	// Start and End are HH:MM bounds of the daily window, End exclusive
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsZero reports whether no restriction is configured
func (r TimeRestrictions) IsZero() bool {
	return len(r.Weekdays) == 0 && r.Start == "" && r.End == ""
}

// Location resolves the configured time zone
func (r TimeRestrictions) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q", ErrInvalidInput, r.Timezone)
	}
	return loc, nil
}

// Validate checks the window is well formed
func (r TimeRestrictions) Validate() error {
	if _, err := r.Location(); err != nil {
		return err
	}
	for _, d := range r.Weekdays {
		if d < 1 || d > 7 {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, d)
		}
	}
	if (r.Start == "") != (r.End == "") {
		return fmt.Errorf("%w: time window needs both start and end", ErrInvalidInput)
	}
	if r.Start != "" {
		start, err := ParseClock(r.Start)
		if err != nil {
			return err
		}
		end, err := ParseClock(r.End)
		if err != nil {
			return err
		}
		if start == end {
			return fmt.Errorf("%w: empty time window", ErrInvalidInput)
		}
	}
	return nil
}

// ParseClock parses HH:MM into minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid clock time %q", ErrInvalidInput, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// PipelineStage is one element of crm_pipelines.stages
type PipelineStage struct {
	Stage       OpportunityStage `json:"stage"`
	Probability float64          `json:"probability"`
}
