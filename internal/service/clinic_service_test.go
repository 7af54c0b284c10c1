package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwitchActiveClinic_DeniedForNonMember(t *testing.T) {
	// The tenant verifier runs before any clinic lookup, so the denied
	// path never touches the clinic repository
	svc := NewClinicService(nil, nil, newTenantFixture(), nil)

	clinic, err := svc.SwitchActiveClinic("user-1", "clinic-b")
	assert.Nil(t, clinic)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSwitchActiveClinic_RequiresUser(t *testing.T) {
	svc := NewClinicService(nil, nil, newTenantFixture(), nil)

	clinic, err := svc.SwitchActiveClinic("", "clinic-a")
	assert.Nil(t, clinic)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
