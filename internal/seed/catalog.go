// Package seed loads the role/permission catalog and applies it to the database.
package seed

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/feral-file/ff-crm/db"
	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/store"
)

// Syncer applies a permission catalog
//
//go:generate mockgen -source=catalog.go -destination=../mocks/seed_syncer.go -package=mocks -mock_names=Syncer=MockCatalogSyncer
type Syncer interface {
	SyncPermissionCatalog(ctx context.Context, permissions []store.CreatePermissionInput, grants map[string][]domain.PermissionName) (store.CatalogSyncResult, error)
}

// Catalog is the parsed form of a seed file
type Catalog struct {
	Permissions []PermissionEntry                  `yaml:"permissions"`
	Grants      map[string][]domain.PermissionName `yaml:"grants"`
}

// PermissionEntry is one permission of the catalog
type PermissionEntry struct {
	Name             domain.PermissionName `yaml:"name"`
	Scope            domain.PermissionScope `yaml:"scope"`
	Description      string                `yaml:"description"`
	Conditions       Conditions            `yaml:"conditions"`
	TimeRestrictions TimeRestrictions      `yaml:"time_restrictions"`
}

// Conditions mirrors domain.PermissionConditions with YAML keys
type Conditions struct {
	OwnOnly     bool                `yaml:"own_only"`
	EntityTypes []domain.EntityType `yaml:"entity_types"`
	RequireMFA  bool                `yaml:"require_mfa"`
}

// TimeRestrictions mirrors domain.TimeRestrictions with YAML keys
type TimeRestrictions struct {
	Timezone string `yaml:"timezone"`
	Weekdays []int  `yaml:"weekdays"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
}

// Load reads a catalog from path, or the embedded default when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(db.RBACSeed)
	}

	data, err := os.ReadFile(path) //nolint:gosec,G304 // operator supplied seed file
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog. Every granted permission must be
// declared in the same file.
func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: failed to parse seed catalog: %v", domain.ErrInvalidInput, err)
	}

	declared := make(map[domain.PermissionName]bool, len(catalog.Permissions))
	for _, p := range catalog.Permissions {
		if _, _, err := p.Name.Parse(); err != nil {
			return nil, err
		}
		if declared[p.Name] {
			return nil, fmt.Errorf("%w: permission %q declared twice", domain.ErrInvalidInput, p.Name)
		}
		declared[p.Name] = true
	}

	for role, names := range catalog.Grants {
		for _, name := range names {
			if !declared[name] {
				return nil, fmt.Errorf("%w: role %q is granted undeclared permission %q", domain.ErrInvalidInput, role, name)
			}
		}
	}

	return &catalog, nil
}

// Inputs converts the catalog into store inputs
func (c *Catalog) Inputs() ([]store.CreatePermissionInput, error) {
	inputs := make([]store.CreatePermissionInput, 0, len(c.Permissions))
	for _, p := range c.Permissions {
		resource, action, err := p.Name.Parse()
		if err != nil {
			return nil, err
		}

		input := store.CreatePermissionInput{
			Resource: resource,
			Action:   action,
			Scope:    p.Scope,
			Conditions: domain.PermissionConditions{
				OwnOnly:     p.Conditions.OwnOnly,
				EntityTypes: p.Conditions.EntityTypes,
				RequireMFA:  p.Conditions.RequireMFA,
			},
			TimeRestrictions: domain.TimeRestrictions{
				Timezone: p.TimeRestrictions.Timezone,
				Weekdays: p.TimeRestrictions.Weekdays,
				Start:    p.TimeRestrictions.Start,
				End:      p.TimeRestrictions.End,
			},
			IsSystem: true,
		}
		if p.Description != "" {
			description := p.Description
			input.Description = &description
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// Roles returns the role names the catalog grants to, sorted
func (c *Catalog) Roles() []string {
	roles := make([]string, 0, len(c.Grants))
	for role := range c.Grants {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Apply syncs the catalog into the database. Existing permissions and grants
// are kept, so applying the same catalog twice creates nothing the second time.
func Apply(ctx context.Context, syncer Syncer, catalog *Catalog) (store.CatalogSyncResult, error) {
	inputs, err := catalog.Inputs()
	if err != nil {
		return store.CatalogSyncResult{}, err
	}

	result, err := syncer.SyncPermissionCatalog(ctx, inputs, catalog.Grants)
	if err != nil {
		return store.CatalogSyncResult{}, err
	}

	logger.InfoCtx(ctx, "Applied permission catalog",
		zap.Int("permissions", len(inputs)),
		zap.Strings("roles", catalog.Roles()),
		zap.Int("permissionsCreated", result.PermissionsCreated),
		zap.Int("grantsCreated", result.GrantsCreated))

	return result, nil
}
