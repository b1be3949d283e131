package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatusTransition(t *testing.T) {
	cases := []struct {
		from    ComplaintStatus
		to      ComplaintStatus
		allowed bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusFixed, true},
		{StatusInProgress, StatusFixed, true},
		{StatusInProgress, StatusPending, false},
		{StatusFixed, StatusPending, false},
		{StatusFixed, StatusInProgress, false},
		{StatusFixed, StatusFixed, false},
		{StatusPending, StatusPending, false},
		{ComplaintStatus("Unknown"), StatusFixed, false},
	}

	for _, tc := range cases {
		got := IsValidStatusTransition(tc.from, tc.to)
		assert.Equalf(t, tc.allowed, got, "transition %s -> %s", tc.from, tc.to)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("Pending"))
	assert.True(t, IsValidStatus("InProgress"))
	assert.True(t, IsValidStatus("Fixed"))
	assert.False(t, IsValidStatus("Resolved"))
	assert.False(t, IsValidStatus(""))
}

func TestPermissionChecks(t *testing.T) {
	deptA := int64(1)
	deptB := int64(2)
	technicianID := int64(7)
	reporterID := int64(3)

	complaint := &Complaint{
		ID:               1,
		UserID:           reporterID,
		Status:           string(StatusPending),
		DepartmentID:     &deptA,
		AssignedToUserID: &technicianID,
	}

	t.Run("view", func(t *testing.T) {
		assert.True(t, CanViewComplaint(RoleAdmin, 99, nil, complaint))
		assert.True(t, CanViewComplaint(RoleDepartmentManager, 99, &deptA, complaint))
		assert.False(t, CanViewComplaint(RoleDepartmentManager, 99, &deptB, complaint))
		assert.True(t, CanViewComplaint(RoleTechnician, technicianID, nil, complaint))
		assert.False(t, CanViewComplaint(RoleTechnician, 99, nil, complaint))
		assert.True(t, CanViewComplaint(RoleCitizen, reporterID, nil, complaint))
		assert.False(t, CanViewComplaint(RoleCitizen, 99, nil, complaint))
	})

	t.Run("change status", func(t *testing.T) {
		assert.True(t, CanChangeStatus(RoleAdmin, 99, nil, complaint))
		assert.True(t, CanChangeStatus(RoleDepartmentManager, 99, &deptA, complaint))
		assert.False(t, CanChangeStatus(RoleDepartmentManager, 99, &deptB, complaint))
		assert.True(t, CanChangeStatus(RoleTechnician, technicianID, nil, complaint))
		assert.False(t, CanChangeStatus(RoleTechnician, 99, nil, complaint))
		// 市民不能驱动状态流转，包括自己提交的投诉
		assert.False(t, CanChangeStatus(RoleCitizen, reporterID, nil, complaint))
	})

	t.Run("assign", func(t *testing.T) {
		assert.True(t, CanAssign(RoleAdmin, nil, complaint))
		assert.True(t, CanAssign(RoleDepartmentManager, &deptA, complaint))
		assert.False(t, CanAssign(RoleDepartmentManager, &deptB, complaint))
		assert.False(t, CanAssign(RoleTechnician, &deptA, complaint))
		assert.False(t, CanAssign(RoleCitizen, nil, complaint))
	})
}
