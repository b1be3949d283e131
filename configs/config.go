package configs

import (
	"log"
	"os"
	"strconv"
	"sync"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	JWTSecret       string
	ServerPort      string
	PointsPerReport int // 每次提交投诉奖励的积分
}

const (
	defaultJWTSecret       = "civicfix"          // Default JWT secret, used if env var is not set.
	envJWTSecretKey        = "JWT_SECRET_KEY"    // Environment variable name for the JWT secret.
	defaultServerPort      = "8080"              // Default server port.
	envServerPortKey       = "SERVER_PORT"       // Environment variable name for the server port.
	defaultPointsPerReport = 5                   // 默认每次提交奖励5分
	envPointsPerReportKey  = "POINTS_PER_REPORT" // 积分奖励环境变量名
)

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		jwtSecret := os.Getenv(envJWTSecretKey)
		if jwtSecret == "" {
			jwtSecret = defaultJWTSecret
			log.Printf("警告: %s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
		}

		serverPort := os.Getenv(envServerPortKey)
		if serverPort == "" {
			serverPort = defaultServerPort
			log.Printf("信息: %s 环境变量未设置。正在使用默认端口 %s。", envServerPortKey, defaultServerPort)
		}

		pointsPerReport := defaultPointsPerReport
		if pointsStr := os.Getenv(envPointsPerReportKey); pointsStr != "" {
			parsed, err := strconv.Atoi(pointsStr)
			if err != nil || parsed < 0 {
				log.Printf("警告: %s 的值 %q 无效，使用默认值 %d。", envPointsPerReportKey, pointsStr, defaultPointsPerReport)
			} else {
				pointsPerReport = parsed
			}
		}

		AppConfig = Configuration{
			JWTSecret:       jwtSecret,
			ServerPort:      serverPort,
			PointsPerReport: pointsPerReport,
		}

		log.Println("应用配置已加载。")
	})
}
