package models

// Actor 当前操作人的身份摘要，由认证中间件从JWT声明中还原，
// 贯穿服务层与仓库层的权限判定和审计留痕。
type Actor struct {
	ID           int64
	Name         string
	Role         string
	DepartmentID *int64
}
