package models

// 原系统中管理员与部门经理对同一批投诉各有一条授权路径，
// 这里统一收敛为按操作的单一权限判定函数，处理器层不再按角色分支。

// CanViewComplaint 判断操作人是否可以查看投诉
func CanViewComplaint(role string, actorID int64, actorDepartmentID *int64, c *Complaint) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleDepartmentManager:
		return actorDepartmentID != nil && c.DepartmentID != nil && *c.DepartmentID == *actorDepartmentID
	case RoleTechnician:
		return c.AssignedToUserID != nil && *c.AssignedToUserID == actorID
	case RoleCitizen:
		return c.UserID == actorID
	default:
		return false
	}
}

// CanChangeStatus 判断操作人是否可以变更投诉状态。
// 市民不驱动状态流转；技术员仅能操作指派给自己的投诉；
// 部门经理仅能操作本部门投诉；管理员不受限。
func CanChangeStatus(role string, actorID int64, actorDepartmentID *int64, c *Complaint) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleDepartmentManager:
		return actorDepartmentID != nil && c.DepartmentID != nil && *c.DepartmentID == *actorDepartmentID
	case RoleTechnician:
		return c.AssignedToUserID != nil && *c.AssignedToUserID == actorID
	default:
		return false
	}
}

// CanAssign 判断操作人是否可以指派/改派投诉。
// 技术员与市民不能派单；部门经理仅限本部门投诉。
func CanAssign(role string, actorDepartmentID *int64, c *Complaint) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleDepartmentManager:
		return actorDepartmentID != nil && c.DepartmentID != nil && *c.DepartmentID == *actorDepartmentID
	default:
		return false
	}
}
