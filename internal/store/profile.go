package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// CreateProfileInput represents the input for creating a profile
type CreateProfileInput struct {
	// UserID is required for user profiles and must match the actor when one is present
	UserID      *uuid.UUID
	ProfileType domain.EntityType
	Handle      string
	// Email becomes the primary entity_emails row
	Email       *string
	FirstName   *string
	LastName    *string
	DisplayName *string
	AvatarURL   *string
	Bio         *string
	Timezone    string
	Locale      string
	Metadata    json.RawMessage
}

// UpdateProfileInput represents a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	ID uuid.UUID
	// Version is the version the caller last read
	Version           int
	Handle            *string
	FirstName         *string
	LastName          *string
	DisplayName       *string
	AvatarURL         *string
	Bio               *string
	Timezone          *string
	Locale            *string
	Status            *domain.RecordStatus
	VerificationLevel *domain.VerificationLevel
	IsVerified        *bool
	Metadata          json.RawMessage
}

// UpdateUserPreferencesInput represents a partial preferences update
type UpdateUserPreferencesInput struct {
	ProfileID            uuid.UUID
	Version              int
	Theme                *domain.ThemePreference
	Language             *string
	NotificationSettings *domain.NotificationSettings
	DisplaySettings      *domain.DisplaySettings
}

// UpdateUserSecuritySettingsInput represents a partial security settings update
type UpdateUserSecuritySettingsInput struct {
	ProfileID           uuid.UUID
	Version             int
	MFAEnabled          *bool
	PasswordChangedAt   *time.Time
	SessionSettings     *domain.SessionSettings
	SecurityPreferences *domain.SecurityPreferences
}

func (i CreateProfileInput) validate() error {
	if !i.ProfileType.Valid() {
		return fmt.Errorf("%w: unknown profile type %q", domain.ErrInvalidInput, i.ProfileType)
	}
	if i.ProfileType == domain.EntityTypeUser && i.UserID == nil {
		return fmt.Errorf("%w: user profiles require a user id", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(i.Handle) == "" {
		return fmt.Errorf("%w: handle is required", domain.ErrInvalidInput)
	}
	if len(i.Metadata) > 0 && !json.Valid(i.Metadata) {
		return fmt.Errorf("%w: metadata is not valid JSON", domain.ErrInvalidInput)
	}
	return nil
}

// CreateProfile inserts a profile. The database creates the satellite rows
// and the primary email in the same transaction.
func (s *pgStore) CreateProfile(ctx context.Context, input CreateProfileInput) (*schema.Profile, error) {
	if input.ProfileType == "" {
		input.ProfileType = domain.EntityTypeUser
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	profile := schema.Profile{
		UserID:      input.UserID,
		ProfileType: input.ProfileType,
		Handle:      strings.TrimSpace(input.Handle),
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
		Bio:         input.Bio,
		Timezone:    input.Timezone,
		Locale:      input.Locale,
		Metadata:    datatypes.JSON(input.Metadata),
	}
	profile.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := create(tx, &profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetProfile retrieves a live profile by id
func (s *pgStore) GetProfile(ctx context.Context, id uuid.UUID) (*schema.Profile, error) {
	var profile *schema.Profile
	err := s.read(ctx, func(tx *gorm.DB) error {
		var err error
		profile, err = getLive[schema.Profile](tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetProfileByHandle retrieves a live profile by handle, case-insensitively
func (s *pgStore) GetProfileByHandle(ctx context.Context, handle string) (*schema.Profile, error) {
	return s.findProfile(ctx, "lower(handle) = lower(?)", strings.TrimSpace(handle))
}

// GetProfileByUserID retrieves the live profile of a user
func (s *pgStore) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*schema.Profile, error) {
	return s.findProfile(ctx, "user_id = ?", userID)
}

func (s *pgStore) findProfile(ctx context.Context, query string, arg any) (*schema.Profile, error) {
	var profile schema.Profile
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Where(query, arg).First(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies a version-checked partial update
func (s *pgStore) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*schema.Profile, error) {
	fields := map[string]any{}
	setIf(fields, "first_name", input.FirstName)
	setIf(fields, "last_name", input.LastName)
	setIf(fields, "display_name", input.DisplayName)
	setIf(fields, "avatar_url", input.AvatarURL)
	setIf(fields, "bio", input.Bio)
	setIf(fields, "timezone", input.Timezone)
	setIf(fields, "locale", input.Locale)
	setIf(fields, "is_verified", input.IsVerified)
	if input.Handle != nil {
		fields["handle"] = strings.TrimSpace(*input.Handle)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *input.Status)
		}
		fields["status"] = *input.Status
	}
	if input.VerificationLevel != nil {
		if !input.VerificationLevel.Valid() {
			return nil, fmt.Errorf("%w: unknown verification level %q", domain.ErrInvalidInput, *input.VerificationLevel)
		}
		fields["verification_level"] = *input.VerificationLevel
	}
	if len(input.Metadata) > 0 {
		if !json.Valid(input.Metadata) {
			return nil, fmt.Errorf("%w: metadata is not valid JSON", domain.ErrInvalidInput)
		}
		fields["metadata"] = datatypes.JSON(input.Metadata)
	}

	var profile schema.Profile
	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := updateVersioned(tx, &profile, input.ID, input.Version, fields); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// SoftDeleteProfile soft-deletes a profile. Satellites and contact rows
// follow through handle_profile_deletion, which frees the handle for reuse.
func (s *pgStore) SoftDeleteProfile(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		if err := softDelete(ctx, tx, &schema.Profile{}, id); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return nil
	})
}

// RestoreProfile undoes a soft delete. It fails with ErrDuplicate when the
// handle has been taken in the meantime.
func (s *pgStore) RestoreProfile(ctx context.Context, id uuid.UUID) error {
	return s.write(ctx, func(tx *gorm.DB) error {
		if err := restore(tx, &schema.Profile{}, id); err != nil {
			return fmt.Errorf("failed to restore profile: %w", err)
		}
		return nil
	})
}

// getSatellite loads the live 1:1 row of a profile
func getSatellite[T any](ctx context.Context, s *pgStore, profileID uuid.UUID) (*T, error) {
	var row T
	err := s.read(ctx, func(tx *gorm.DB) error {
		return live(tx).Where("profile_id = ?", profileID).First(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// updateSatellite applies a version-checked update to the live 1:1 row of a profile
func updateSatellite[T any](ctx context.Context, s *pgStore, profileID uuid.UUID, version int, fields map[string]any) (*T, error) {
	var row T
	err := s.write(ctx, func(tx *gorm.DB) error {
		var current T
		if err := live(tx).Where("profile_id = ?", profileID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%s of profile %s: %w", tableOf(&current), profileID, domain.ErrNotFound)
			}
			return err
		}
		id := any(&current).(schema.Record).GetBase().ID
		return updateVersioned(tx, &row, id, version, fields)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetUserPreferences retrieves a profile's preferences with defaults applied
func (s *pgStore) GetUserPreferences(ctx context.Context, profileID uuid.UUID) (*schema.UserPreferences, error) {
	prefs, err := getSatellite[schema.UserPreferences](ctx, s, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}
	if prefs != nil {
		prefs.NotificationSettings = datatypes.NewJSONType(prefs.NotificationSettings.Data().WithDefaults())
		prefs.DisplaySettings = datatypes.NewJSONType(prefs.DisplaySettings.Data().WithDefaults())
	}
	return prefs, nil
}

// UpdateUserPreferences applies a version-checked preferences update
func (s *pgStore) UpdateUserPreferences(ctx context.Context, input UpdateUserPreferencesInput) (*schema.UserPreferences, error) {
	fields := map[string]any{}
	setIf(fields, "language", input.Language)
	if input.Theme != nil {
		if !input.Theme.Valid() {
			return nil, fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, *input.Theme)
		}
		fields["theme"] = *input.Theme
	}
	if input.NotificationSettings != nil {
		settings := input.NotificationSettings.WithDefaults()
		if err := settings.Validate(); err != nil {
			return nil, err
		}
		fields["notification_settings"] = datatypes.NewJSONType(settings)
	}
	if input.DisplaySettings != nil {
		settings := input.DisplaySettings.WithDefaults()
		if err := settings.Validate(); err != nil {
			return nil, err
		}
		fields["display_settings"] = datatypes.NewJSONType(settings)
	}

	prefs, err := updateSatellite[schema.UserPreferences](ctx, s, input.ProfileID, input.Version, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update user preferences: %w", err)
	}
	return prefs, nil
}

// GetUserSecuritySettings retrieves a profile's security settings with defaults applied
func (s *pgStore) GetUserSecuritySettings(ctx context.Context, profileID uuid.UUID) (*schema.UserSecuritySettings, error) {
	settings, err := getSatellite[schema.UserSecuritySettings](ctx, s, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user security settings: %w", err)
	}
	if settings != nil {
		settings.SessionSettings = datatypes.NewJSONType(settings.SessionSettings.Data().WithDefaults())
		settings.SecurityPreferences = datatypes.NewJSONType(settings.SecurityPreferences.Data().WithDefaults())
	}
	return settings, nil
}

// UpdateUserSecuritySettings applies a version-checked security settings update
func (s *pgStore) UpdateUserSecuritySettings(ctx context.Context, input UpdateUserSecuritySettingsInput) (*schema.UserSecuritySettings, error) {
	fields := map[string]any{}
	setIf(fields, "mfa_enabled", input.MFAEnabled)
	setIf(fields, "password_changed_at", input.PasswordChangedAt)
	if input.SessionSettings != nil {
		settings := input.SessionSettings.WithDefaults()
		if err := settings.Validate(); err != nil {
			return nil, err
		}
		fields["session_settings"] = datatypes.NewJSONType(settings)
	}
	if input.SecurityPreferences != nil {
		prefs := input.SecurityPreferences.WithDefaults()
		if err := prefs.Validate(); err != nil {
			return nil, err
		}
		fields["security_preferences"] = datatypes.NewJSONType(prefs)
	}

	settings, err := updateSatellite[schema.UserSecuritySettings](ctx, s, input.ProfileID, input.Version, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update user security settings: %w", err)
	}
	return settings, nil
}

// GetUserOnboarding retrieves a profile's onboarding progress
func (s *pgStore) GetUserOnboarding(ctx context.Context, profileID uuid.UUID) (*schema.UserOnboarding, error) {
	onboarding, err := getSatellite[schema.UserOnboarding](ctx, s, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user onboarding: %w", err)
	}
	return onboarding, nil
}

// AdvanceOnboarding marks step complete, moves the cursor to the first
// unfinished step and completes onboarding once every step is done. Data,
// when given, replaces the stored questionnaire data.
func (s *pgStore) AdvanceOnboarding(ctx context.Context, profileID uuid.UUID, step string, data *domain.OnboardingData) (*schema.UserOnboarding, error) {
	if !slices.Contains(domain.OnboardingSteps, step) {
		return nil, fmt.Errorf("%w: unknown onboarding step %q", domain.ErrInvalidInput, step)
	}

	var onboarding schema.UserOnboarding
	err := s.write(ctx, func(tx *gorm.DB) error {
		var current schema.UserOnboarding
		err := live(tx).Where("profile_id = ?", profileID).First(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("onboarding of profile %s: %w", profileID, domain.ErrNotFound)
			}
			return err
		}

		completed := []string(current.CompletedSteps)
		if !slices.Contains(completed, step) {
			completed = append(completed, step)
		}

		next := len(domain.OnboardingSteps)
		for i, st := range domain.OnboardingSteps {
			if !slices.Contains(completed, st) {
				next = i
				break
			}
		}

		fields := map[string]any{
			"completed_steps": datatypes.JSONSlice[string](completed),
			"current_step":    next,
		}
		if next == len(domain.OnboardingSteps) && !current.IsCompleted {
			fields["is_completed"] = true
			fields["completed_at"] = time.Now().UTC()
		}
		if data != nil {
			fields["onboarding_data"] = datatypes.NewJSONType(*data)
		}

		return updateVersioned(tx, &onboarding, current.ID, current.Version, fields)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to advance onboarding: %w", err)
	}

	return &onboarding, nil
}

// setIf copies a non-nil pointer's value into fields
func setIf[T any](fields map[string]any, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}
