package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/auth"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/leave"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/staff"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/validator"
)

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"insufficient permissions", user.ErrInsufficientPermissions, http.StatusForbidden, "FORBIDDEN"},
		{"staff not found", staff.ErrStaffNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped mentor not found", fmt.Errorf("assign: %w", staff.ErrMentorNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"registration processed", staff.ErrRegistrationAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"leave processed", leave.ErrLeaveApplicationAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"substitute is applicant", leave.ErrSubstituteIsApplicant, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{{Field: "end_date", Message: "end_date must not be before start_date"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "end_date must not be before start_date", body.Error.Details["end_date"])
}

func TestList_WritesMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	status := "pending"

	List(rec, []string{"a", "b"}, &status)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Total)
	assert.Equal(t, "pending", body.Meta.Status)
}
