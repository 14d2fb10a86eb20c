package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
		wantDetail string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("failed to get lead: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "permission denied",
			err:        fmt.Errorf("%w: leads:read", domain.ErrPermissionDenied),
			wantStatus: http.StatusForbidden,
			wantCode:   ErrCodeForbidden,
		},
		{
			name:       "version conflict",
			err:        domain.ErrVersionConflict,
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeVersionConflict,
		},
		{
			name: "duplicate keeps the constraint name",
			err: &store.ConstraintError{
				Kind:       domain.ErrDuplicate,
				Constraint: "profiles_handle_live_key",
				Err:        errors.New("duplicate key value"),
			},
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeConflict,
			wantDetail: "profiles_handle_live_key",
		},
		{
			name:       "immutable",
			err:        domain.ErrImmutable,
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeImmutable,
		},
		{
			name:       "self delegation",
			err:        domain.ErrSelfDelegation,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "dependency cycle",
			err:        domain.ErrDependencyCycle,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeConstraint,
		},
		{
			name:       "api error passes through",
			err:        NewUnauthorizedError("Authentication failed"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := FromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, apiErr.Details)
			}
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	_, apiErr := FromError(errors.New("password=secret"))
	assert.NotContains(t, apiErr.Message, "secret")
	assert.Empty(t, apiErr.Details)
}
