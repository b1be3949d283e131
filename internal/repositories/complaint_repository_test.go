package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/civicfix/internal/models"
	"github.com/civicfix/pkg/db"
)

// setupTestDB 打开内存数据库并写入参考数据。
// 连接数限制为1，避免多连接导致内存库不共享。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.SeedReferenceData(database))
	return database
}

func createUser(t *testing.T, database *gorm.DB, name, role string, departmentID *int64) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@test.local",
		PasswordHash: "x",
		Role:         role,
		BadgeLevel:   models.DefaultBadgeLevel,
		DepartmentID: departmentID,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func flatBadge(points int) string {
	return models.DefaultBadgeLevel
}

func submitComplaint(t *testing.T, repo ComplaintRepository, reporterID int64, problemType string) *models.Complaint {
	t.Helper()
	complaint, _, err := repo.Submit(context.Background(), &models.Complaint{
		UserID:      reporterID,
		ProblemType: problemType,
		Latitude:    31.23,
		Longitude:   121.47,
	}, 5, flatBadge)
	require.NoError(t, err)
	return complaint
}

func adminActor(id int64) models.Actor {
	return models.Actor{ID: id, Name: "admin", Role: models.RoleAdmin}
}

func TestSubmitAutoRoutesByProblemType(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)

	complaint, routedDept, err := repo.Submit(context.Background(), &models.Complaint{
		UserID:      reporter.ID,
		ProblemType: "Pothole",
		Latitude:    31.23,
		Longitude:   121.47,
	}, 5, flatBadge)
	require.NoError(t, err)
	require.NotNil(t, routedDept)
	assert.Equal(t, "Public Works", routedDept.Name)
	require.NotNil(t, complaint.DepartmentID)
	assert.Equal(t, routedDept.ID, *complaint.DepartmentID)
	assert.Equal(t, string(models.StatusPending), complaint.Status)

	// 恰好一条激活指派记录，带自动派单备注
	var assignments []models.ComplaintAssignment
	require.NoError(t, database.Where("complaint_id = ?", complaint.ID).Find(&assignments).Error)
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].IsActive)
	require.NotNil(t, assignments[0].Note)
	assert.Equal(t, "Auto-assigned based on problem type", *assignments[0].Note)

	// 恰好一条系统审计评论
	var comments []models.Comment
	require.NoError(t, database.Where("complaint_id = ?", complaint.ID).Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, models.SystemAuthorName, comments[0].AuthorName)
	assert.Equal(t, "Complaint automatically assigned to Public Works department", comments[0].Content)

	// 提交人获得积分
	var refreshed models.User
	require.NoError(t, database.First(&refreshed, reporter.ID).Error)
	assert.Equal(t, 5, refreshed.Points)
}

func TestSubmitUnmappedProblemTypeStaysUnassigned(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)

	complaint, routedDept, err := repo.Submit(context.Background(), &models.Complaint{
		UserID:      reporter.ID,
		ProblemType: "Graffiti",
		Latitude:    31.23,
		Longitude:   121.47,
	}, 5, flatBadge)
	require.NoError(t, err)
	assert.Nil(t, routedDept)
	assert.Nil(t, complaint.DepartmentID)

	var assignmentCount, commentCount int64
	database.Model(&models.ComplaintAssignment{}).Where("complaint_id = ?", complaint.ID).Count(&assignmentCount)
	database.Model(&models.Comment{}).Where("complaint_id = ?", complaint.ID).Count(&commentCount)
	assert.Zero(t, assignmentCount)
	assert.Zero(t, commentCount)

	// 路由缺失不影响积分奖励
	var refreshed models.User
	require.NoError(t, database.First(&refreshed, reporter.ID).Error)
	assert.Equal(t, 5, refreshed.Points)
}

func TestSubmitInactiveRouteIgnored(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)

	require.NoError(t, database.Model(&models.ProblemTypeRoute{}).
		Where("problem_type = ?", "Pothole").Update("is_active", false).Error)

	_, routedDept, err := repo.Submit(context.Background(), &models.Complaint{
		UserID:      reporter.ID,
		ProblemType: "Pothole",
		Latitude:    31.23,
		Longitude:   121.47,
	}, 5, flatBadge)
	require.NoError(t, err)
	assert.Nil(t, routedDept)
}

func TestSubmitAwardsBadgeFromComputeFunc(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)

	compute := func(points int) string {
		if points >= 10 {
			return "Silver"
		}
		return "Bronze"
	}

	submit := func() {
		_, _, err := repo.Submit(context.Background(), &models.Complaint{
			UserID:      reporter.ID,
			ProblemType: "Graffiti",
			Latitude:    1,
			Longitude:   1,
		}, 5, compute)
		require.NoError(t, err)
	}

	submit()
	var refreshed models.User
	require.NoError(t, database.First(&refreshed, reporter.ID).Error)
	assert.Equal(t, 5, refreshed.Points)
	assert.Equal(t, "Bronze", refreshed.BadgeLevel)

	submit()
	require.NoError(t, database.First(&refreshed, reporter.ID).Error)
	assert.Equal(t, 10, refreshed.Points)
	assert.Equal(t, "Silver", refreshed.BadgeLevel)
}

func TestTransitionLifecycle(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	complaint := submitComplaint(t, repo, reporter.ID, "Pothole")

	updated, err := repo.Transition(complaint.ID, models.StatusInProgress, adminActor(admin.ID))
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusInProgress), updated.Status)
	require.NotNil(t, updated.UpdatedAt)

	// 回退非法
	_, err = repo.Transition(complaint.ID, models.StatusPending, adminActor(admin.ID))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err = repo.Transition(complaint.ID, models.StatusFixed, adminActor(admin.ID))
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusFixed), updated.Status)

	// Fixed 为终态
	for _, target := range []models.ComplaintStatus{models.StatusPending, models.StatusInProgress, models.StatusFixed} {
		_, err = repo.Transition(complaint.ID, target, adminActor(admin.ID))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}

	// 每次成功流转落一条审计评论（另有一条提交时的自动派单评论）
	var comments []models.Comment
	require.NoError(t, database.Where("complaint_id = ? AND author_role = ?", complaint.ID, models.RoleAdmin).
		Order("created_at asc").Find(&comments).Error)
	require.Len(t, comments, 2)
	assert.Equal(t, "Status changed from Pending to InProgress", comments[0].Content)
	assert.Equal(t, "Status changed from InProgress to Fixed", comments[1].Content)
}

func TestTransitionFailureWritesNothing(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	complaint := submitComplaint(t, repo, reporter.ID, "Graffiti")

	var before int64
	database.Model(&models.Comment{}).Where("complaint_id = ?", complaint.ID).Count(&before)

	_, err := repo.Transition(complaint.ID, models.ComplaintStatus("Pending"), adminActor(admin.ID))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var after int64
	database.Model(&models.Comment{}).Where("complaint_id = ?", complaint.ID).Count(&after)
	assert.Equal(t, before, after)

	var refreshed models.Complaint
	require.NoError(t, database.First(&refreshed, complaint.ID).Error)
	assert.Equal(t, string(models.StatusPending), refreshed.Status)
}

func TestTechnicianMarkFixedRequiresTwoPhotos(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	deptID := int64(1)
	technician := createUser(t, database, "tech1", models.RoleTechnician, &deptID)
	complaint := submitComplaint(t, repo, reporter.ID, "Pothole")

	_, err := repo.Assign(complaint.ID, &deptID, &technician.ID, nil, adminActor(admin.ID))
	require.NoError(t, err)

	technicianActor := models.Actor{ID: technician.ID, Name: technician.Name, Role: models.RoleTechnician, DepartmentID: &deptID}

	// 无照片记录时拒绝
	_, err = repo.Transition(complaint.ID, models.StatusFixed, technicianActor)
	assert.ErrorIs(t, err, ErrPhotosRequired)

	// 仅一张也拒绝
	require.NoError(t, database.Create(&models.TechnicianPhoto{
		ComplaintID: complaint.ID, PhotoType: models.PhotoTypeWorkInProgress, PhotoPath: "a.jpg",
	}).Error)
	_, err = repo.Transition(complaint.ID, models.StatusFixed, technicianActor)
	assert.ErrorIs(t, err, ErrPhotosRequired)

	require.NoError(t, database.Create(&models.TechnicianPhoto{
		ComplaintID: complaint.ID, PhotoType: models.PhotoTypeFixed, PhotoPath: "b.jpg",
	}).Error)
	updated, err := repo.Transition(complaint.ID, models.StatusFixed, technicianActor)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusFixed), updated.Status)
}

func TestTransitionForbiddenForUnassignedTechnician(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	technician := createUser(t, database, "tech1", models.RoleTechnician, nil)
	complaint := submitComplaint(t, repo, reporter.ID, "Pothole")

	_, err := repo.Transition(complaint.ID, models.StatusInProgress,
		models.Actor{ID: technician.ID, Name: technician.Name, Role: models.RoleTechnician})
	assert.ErrorIs(t, err, ErrOperationForbidden)
}

func TestAssignWorkloadGate(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	deptID := int64(1)
	technician := createUser(t, database, "tech1", models.RoleTechnician, &deptID)

	first := submitComplaint(t, repo, reporter.ID, "Pothole")
	second := submitComplaint(t, repo, reporter.ID, "Streetlight")

	_, err := repo.Assign(first.ID, &deptID, &technician.ID, nil, adminActor(admin.ID))
	require.NoError(t, err)

	// 技术员手上有一单 Pending，闸门拒绝，且不留下任何指派痕迹
	var beforeRows int64
	database.Model(&models.ComplaintAssignment{}).Where("complaint_id = ?", second.ID).Count(&beforeRows)

	_, err = repo.Assign(second.ID, &deptID, &technician.ID, nil, adminActor(admin.ID))
	assert.ErrorIs(t, err, ErrTechnicianBusy)

	var afterRows int64
	database.Model(&models.ComplaintAssignment{}).Where("complaint_id = ?", second.ID).Count(&afterRows)
	assert.Equal(t, beforeRows, afterRows)

	var refreshed models.Complaint
	require.NoError(t, database.First(&refreshed, second.ID).Error)
	assert.Nil(t, refreshed.AssignedToUserID)

	// 第一单修复后技术员空闲，第二单可以指派
	require.NoError(t, database.Create(&models.TechnicianPhoto{ComplaintID: first.ID, PhotoType: models.PhotoTypeWorkInProgress, PhotoPath: "a.jpg"}).Error)
	require.NoError(t, database.Create(&models.TechnicianPhoto{ComplaintID: first.ID, PhotoType: models.PhotoTypeFixed, PhotoPath: "b.jpg"}).Error)
	_, err = repo.Transition(first.ID, models.StatusFixed,
		models.Actor{ID: technician.ID, Name: technician.Name, Role: models.RoleTechnician, DepartmentID: &deptID})
	require.NoError(t, err)

	_, err = repo.Assign(second.ID, &deptID, &technician.ID, nil, adminActor(admin.ID))
	assert.NoError(t, err)
}

func TestAssignKeepsSingleActiveRecord(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	deptID := int64(1)
	otherDeptID := int64(2)
	techA := createUser(t, database, "techA", models.RoleTechnician, &deptID)
	techB := createUser(t, database, "techB", models.RoleTechnician, &otherDeptID)
	complaint := submitComplaint(t, repo, reporter.ID, "Pothole")

	_, err := repo.Assign(complaint.ID, &deptID, &techA.ID, nil, adminActor(admin.ID))
	require.NoError(t, err)
	_, err = repo.Assign(complaint.ID, &otherDeptID, &techB.ID, nil, adminActor(admin.ID))
	require.NoError(t, err)

	// 历史只追加：自动路由1条 + 两次人工指派
	var total, active int64
	database.Model(&models.ComplaintAssignment{}).Where("complaint_id = ?", complaint.ID).Count(&total)
	database.Model(&models.ComplaintAssignment{}).Where("complaint_id = ? AND is_active = ?", complaint.ID, true).Count(&active)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(1), active)

	// 激活记录与投诉当前指派一致
	var current models.ComplaintAssignment
	require.NoError(t, database.Where("complaint_id = ? AND is_active = ?", complaint.ID, true).First(&current).Error)
	require.NotNil(t, current.AssignedToUserID)
	assert.Equal(t, techB.ID, *current.AssignedToUserID)

	var refreshed models.Complaint
	require.NoError(t, database.First(&refreshed, complaint.ID).Error)
	require.NotNil(t, refreshed.AssignedToUserID)
	assert.Equal(t, techB.ID, *refreshed.AssignedToUserID)
}

func TestAssignUnknownTechnician(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	complaint := submitComplaint(t, repo, reporter.ID, "Pothole")

	missingID := int64(9999)
	_, err := repo.Assign(complaint.ID, nil, &missingID, nil, adminActor(admin.ID))
	assert.ErrorIs(t, err, ErrTechnicianNotFound)

	// 市民账号不能作为技术员被指派
	_, err = repo.Assign(complaint.ID, nil, &reporter.ID, nil, adminActor(admin.ID))
	assert.ErrorIs(t, err, ErrTechnicianNotFound)
}

func TestPurgeCascades(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	ratingRepo := NewGormRatingRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)
	complaint := submitComplaint(t, repo, reporter.ID, "Pothole")

	require.NoError(t, database.Create(&models.TechnicianPhoto{ComplaintID: complaint.ID, PhotoType: models.PhotoTypeWorkInProgress, PhotoPath: "a.jpg"}).Error)
	require.NoError(t, database.Create(&models.TechnicianPhoto{ComplaintID: complaint.ID, PhotoType: models.PhotoTypeFixed, PhotoPath: "b.jpg"}).Error)
	_, err := repo.Transition(complaint.ID, models.StatusFixed, adminActor(admin.ID))
	require.NoError(t, err)
	_, err = ratingRepo.Rate(complaint.ID, reporter.ID, 4, nil, timeNowUTC())
	require.NoError(t, err)

	require.NoError(t, repo.Purge(context.Background(), complaint.ID))

	tables := []interface{}{
		&models.Complaint{}, &models.Comment{}, &models.ComplaintRating{},
		&models.ComplaintAssignment{}, &models.TechnicianPhoto{},
	}
	for _, table := range tables {
		var count int64
		query := database.Model(table)
		if _, isComplaint := table.(*models.Complaint); isComplaint {
			query = query.Where("id = ?", complaint.ID)
		} else {
			query = query.Where("complaint_id = ?", complaint.ID)
		}
		require.NoError(t, query.Count(&count).Error)
		assert.Zerof(t, count, "%T should be empty after purge", table)
	}

	// 再次删除返回未找到
	assert.ErrorIs(t, repo.Purge(context.Background(), complaint.ID), ErrRecordNotFound)
}

func TestGetComplaintsFiltersAndPagination(t *testing.T) {
	database := setupTestDB(t)
	repo := NewGormComplaintRepository(database)
	reporter := createUser(t, database, "citizen1", models.RoleCitizen, nil)
	admin := createUser(t, database, "admin1", models.RoleAdmin, nil)

	first := submitComplaint(t, repo, reporter.ID, "Pothole")
	submitComplaint(t, repo, reporter.ID, "Streetlight")
	submitComplaint(t, repo, reporter.ID, "Graffiti")

	_, err := repo.Transition(first.ID, models.StatusFixed, adminActor(admin.ID))
	require.NoError(t, err)

	items, total, err := repo.GetComplaints(1, 10, "", "", ComplaintListFilter{Status: string(models.StatusPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	// 分页
	items, total, err = repo.GetComplaints(2, 2, "createdAt", "asc", ComplaintListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)

	// 搜索匹配问题类型
	items, _, err = repo.GetComplaints(1, 10, "", "", ComplaintListFilter{Search: "Street"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Streetlight", items[0].ProblemType)

	// 列表视图带出提交人名称和徽章
	assert.Equal(t, "citizen1", items[0].ReporterName)
	assert.Equal(t, models.DefaultBadgeLevel, items[0].ReporterBadge)
}
