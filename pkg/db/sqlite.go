package db

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/civicfix/internal/models"
)

var gormDB *gorm.DB

const (
	defaultDbPathEnv = "SQLITE_DB_PATH"
	defaultDbFile    = "data/civicfix.db"
)

// InitDB 初始化 GORM 数据库连接
// 数据库文件路径通过环境变量 SQLITE_DB_PATH 获取，如果未设置，则使用默认值 "data/civicfix.db"
func InitDB() {
	dbPath := os.Getenv(defaultDbPathEnv)
	if dbPath == "" {
		dbPath = defaultDbFile
		log.Printf("Environment variable %s not set, using default database path: %s", defaultDbPathEnv, dbPath)
	} else {
		log.Printf("Using database path from environment variable %s: %s", defaultDbPathEnv, dbPath)
	}

	// 确保数据库文件所在的目录存在
	dbDir := filepath.Dir(dbPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		log.Printf("Database directory %s does not exist, creating it...", dbDir)
		if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
			log.Fatalf("Failed to create database directory %s: %v", dbDir, mkErr)
		}
	}

	var err error
	// 配置 GORM 日志级别
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  logger.Info, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // 忽略ErrRecordNotFound（记录未找到）错误
			Colorful:                  false,       // 禁用彩色打印
		},
	)

	gormDB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newLogger,
	})

	if err != nil {
		log.Fatalf("Failed to connect to database %s: %v", dbPath, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB from GORM: %v", err)
	}

	// 设置数据库连接池参数 (可选)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Successfully connected to database using GORM: %s", dbPath)

	if err := Migrate(gormDB); err != nil {
		log.Fatalf("Failed to auto migrate database tables: %v", err)
	}
	log.Println("Database tables migrated successfully.")

	if err := SeedReferenceData(gormDB); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}
}

// Migrate 自动迁移数据库表结构
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.ProblemTypeRoute{},
		&models.Complaint{},
		&models.ComplaintAssignment{},
		&models.ComplaintRating{},
		&models.Comment{},
		&models.CommentAttachment{},
		&models.TechnicianPhoto{},
		&models.Badge{},
	)
}

// SeedReferenceData 在参考数据表为空时写入初始数据：
// 徽章档位、部门和问题类型路由。已有数据时不做任何改动。
func SeedReferenceData(database *gorm.DB) error {
	var badgeCount int64
	if err := database.Model(&models.Badge{}).Count(&badgeCount).Error; err != nil {
		return err
	}
	if badgeCount == 0 {
		badges := []models.Badge{
			{LevelName: "Bronze", PointsRequired: 10},
			{LevelName: "Silver", PointsRequired: 30},
			{LevelName: "Gold", PointsRequired: 60},
			{LevelName: "Platinum", PointsRequired: 100},
			{LevelName: "Diamond", PointsRequired: 150},
		}
		if err := database.Create(&badges).Error; err != nil {
			return err
		}
		log.Println("Seeded badge tiers.")
	}

	var departmentCount int64
	if err := database.Model(&models.Department{}).Count(&departmentCount).Error; err != nil {
		return err
	}
	if departmentCount == 0 {
		publicWorksDesc := "Handles road surfaces, street lighting and public structures"
		trafficDesc := "Handles traffic signals and road safety equipment"
		utilitiesDesc := "Handles water, sewage and waste disposal"
		departments := []models.Department{
			{Name: "Public Works", Description: &publicWorksDesc, Email: "publicworks@civicfix.local", IsActive: true},
			{Name: "Traffic Management", Description: &trafficDesc, Email: "traffic@civicfix.local", IsActive: true},
			{Name: "Utilities", Description: &utilitiesDesc, Email: "utilities@civicfix.local", IsActive: true},
		}
		if err := database.Create(&departments).Error; err != nil {
			return err
		}

		routes := []models.ProblemTypeRoute{
			{ProblemType: "Pothole", DepartmentID: departments[0].ID, IsActive: true},
			{ProblemType: "Streetlight", DepartmentID: departments[0].ID, IsActive: true},
			{ProblemType: "Bridges", DepartmentID: departments[0].ID, IsActive: true},
			{ProblemType: "Traffic Signal", DepartmentID: departments[1].ID, IsActive: true},
			{ProblemType: "Water Disposal", DepartmentID: departments[2].ID, IsActive: true},
			{ProblemType: "Sewer Lids", DepartmentID: departments[2].ID, IsActive: true},
		}
		if err := database.Create(&routes).Error; err != nil {
			return err
		}
		log.Println("Seeded departments and problem type routes.")
	}

	return nil
}

// GetDB 返回 GORM 数据库实例
func GetDB() *gorm.DB {
	if gormDB == nil {
		log.Fatal("Database not initialized. Call InitDB first.")
	}
	return gormDB
}

// CloseDB 关闭 GORM 数据库连接 (通常在应用退出时调用)
func CloseDB() {
	if gormDB != nil {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Printf("Error getting underlying sql.DB for closing: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		log.Println("Database connection closed.")
	}
}
