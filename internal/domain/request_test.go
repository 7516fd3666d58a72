package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValidity(t *testing.T) {
	assert.True(t, ServiceTypeRepair.Valid())
	assert.False(t, ServiceType("Gardening").Valid())

	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, RequestPriority("Critical").Valid())

	for _, status := range []RequestStatus{
		StatusPending, StatusAssigned, StatusInProgress,
		StatusOnHold, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, RequestStatus("Archived").Valid())
	assert.False(t, RequestStatus("pending").Valid(), "status values are case sensitive")
}

func TestOwnedBy(t *testing.T) {
	request := &ServiceRequest{ID: 7, UserID: 42}
	assert.True(t, request.OwnedBy(42))
	assert.False(t, request.OwnedBy(99))

	var nilRequest *ServiceRequest
	assert.False(t, nilRequest.OwnedBy(42))
}
