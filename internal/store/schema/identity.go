package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// Profile represents the profiles table - one row per user or CRM-side party
type Profile struct {
	Base
	// UserID links the profile to auth.users; nil for non-user profiles
	UserID *uuid.UUID `gorm:"column:user_id;type:uuid"`
	// ProfileType is the entity kind this profile stands for
	ProfileType domain.EntityType `gorm:"column:profile_type;type:entity_type;not null;default:user"`
	// Handle is the public, case-insensitively unique name among live profiles
	Handle string `gorm:"column:handle;type:text;not null"`
	// Email is the signup address; a primary entity_emails row is created from it
	Email     *string `gorm:"column:email;type:text"`
	FirstName *string `gorm:"column:first_name;type:text"`
	LastName  *string `gorm:"column:last_name;type:text"`
	// FullName is generated from first and last name
	FullName    *string `gorm:"->;column:full_name;type:text"`
	DisplayName *string `gorm:"column:display_name;type:text"`
	AvatarURL   *string `gorm:"column:avatar_url;type:text"`
	Bio         *string `gorm:"column:bio;type:text"`
	// Timezone is an IANA name checked against pg_timezone_names
	Timezone string              `gorm:"column:timezone;type:text;not null;default:UTC"`
	Locale   string              `gorm:"column:locale;type:text;not null;default:en"`
	Status   domain.RecordStatus `gorm:"column:status;type:record_status;not null;default:active"`
	// VerificationLevel must be above none when IsVerified is set
	VerificationLevel domain.VerificationLevel `gorm:"column:verification_level;type:verification_level;not null;default:none"`
	// IsVerified makes the profile readable by everyone
	IsVerified bool           `gorm:"column:is_verified;not null"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// UserPreferences represents the user_preferences table
type UserPreferences struct {
	Base
	ProfileID            uuid.UUID                                       `gorm:"column:profile_id;type:uuid;not null"`
	Theme                domain.ThemePreference                          `gorm:"column:theme;type:theme_preference;not null;default:system"`
	Language             string                                          `gorm:"column:language;type:text;not null;default:en"`
	NotificationSettings datatypes.JSONType[domain.NotificationSettings] `gorm:"column:notification_settings;type:jsonb;not null;default:'{}'"`
	DisplaySettings      datatypes.JSONType[domain.DisplaySettings]      `gorm:"column:display_settings;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the UserPreferences model
func (UserPreferences) TableName() string {
	return "user_preferences"
}

// UserSecuritySettings represents the user_security_settings table
type UserSecuritySettings struct {
	Base
	ProfileID           uuid.UUID                                      `gorm:"column:profile_id;type:uuid;not null"`
	MFAEnabled          bool                                           `gorm:"column:mfa_enabled;not null"`
	PasswordChangedAt   *time.Time                                     `gorm:"column:password_changed_at"`
	LockedUntil         *time.Time                                     `gorm:"column:locked_until"`
	FailedLoginAttempts int                                            `gorm:"column:failed_login_attempts;not null;default:0"`
	SessionSettings     datatypes.JSONType[domain.SessionSettings]     `gorm:"column:session_settings;type:jsonb;not null;default:'{}'"`
	SecurityPreferences datatypes.JSONType[domain.SecurityPreferences] `gorm:"column:security_preferences;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the UserSecuritySettings model
func (UserSecuritySettings) TableName() string {
	return "user_security_settings"
}

// UserOnboarding represents the user_onboarding table
type UserOnboarding struct {
	Base
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;not null"`
	// CurrentStep indexes domain.OnboardingSteps
	CurrentStep    int                                       `gorm:"column:current_step;not null;default:0"`
	CompletedSteps datatypes.JSONSlice[string]               `gorm:"column:completed_steps;type:jsonb;not null;default:'[]'"`
	IsCompleted    bool                                      `gorm:"column:is_completed;not null"`
	CompletedAt    *time.Time                                `gorm:"column:completed_at"`
	OnboardingData datatypes.JSONType[domain.OnboardingData] `gorm:"column:onboarding_data;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the UserOnboarding model
func (UserOnboarding) TableName() string {
	return "user_onboarding"
}
