package models

// DefaultBadgeLevel 积分低于最低档位时仍然持有的保底徽章
const DefaultBadgeLevel = "Bronze"

// Badge 徽章档位表（积分门槛 → 档位名称）。
// 运行期只读的参考数据，门槛严格递增且唯一。
type Badge struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	LevelName      string `json:"levelName" gorm:"column:level_name;not null;size:50"`
	PointsRequired int    `json:"pointsRequired" gorm:"column:points_required;not null"`
}

// TableName 指定 Badge 结构体对应的数据库表名
func (Badge) TableName() string {
	return "badges"
}
