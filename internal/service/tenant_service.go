package service

import (
	"fmt"

	"clinic-scheduling-backend/internal/models"
)

// SelectActiveClinic resolves which clinic a session operates against.
// clinics must be in membership insertion order; cookieClinicID is the
// previously stored selection, or empty. The rules:
//   - no memberships: (nil, "")
//   - cookie matches a membership: that clinic
//   - otherwise: the first clinic in the list
//
// Pure function; the caller persists the resolved id back into the cookie
// when it changed.
func SelectActiveClinic(clinics []models.ClinicSummary, cookieClinicID string) (*models.ClinicSummary, string) {
	if len(clinics) == 0 {
		return nil, ""
	}

	if cookieClinicID != "" {
		for i := range clinics {
			if clinics[i].ID == cookieClinicID {
				return &clinics[i], clinics[i].ID
			}
		}
	}

	return &clinics[0], clinics[0].ID
}

// membershipReader is the slice of UserClinicRepository the tenant
// verifier needs
type membershipReader interface {
	UserHasAccessToClinic(userID, clinicID string) (bool, error)
}

// userReader is the slice of UserRepository the tenant verifier needs
type userReader interface {
	FindUserByID(id string) (*models.User, error)
}

// TenantContext is the result of a successful tenant verification
type TenantContext struct {
	ClinicID string
	User     *models.User
}

type TenantService struct {
	memberships membershipReader
	users       userReader
}

func NewTenantService(memberships membershipReader, users userReader) *TenantService {
	return &TenantService{
		memberships: memberships,
		users:       users,
	}
}

// VerifyTenant authorizes a request against its resolved active clinic.
// Fails with ErrUnauthorized without a user, ErrNoActiveClinic without a
// resolved clinic id, and ErrAccessDenied when the clinic is not among the
// user's memberships.
func (s *TenantService) VerifyTenant(userID, activeClinicID string) (*TenantContext, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if activeClinicID == "" {
		return nil, ErrNoActiveClinic
	}

	hasAccess, err := s.memberships.UserHasAccessToClinic(userID, activeClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify clinic access: %w", err)
	}
	if !hasAccess {
		return nil, ErrAccessDenied
	}

	user, err := s.users.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &TenantContext{ClinicID: activeClinicID, User: user}, nil
}
