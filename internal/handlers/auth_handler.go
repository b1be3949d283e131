package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicfix/configs"
	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/models"
	"github.com/civicfix/internal/repositories"
	"github.com/civicfix/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Points       int    `json:"points"`
	BadgeLevel   string `json:"badgeLevel"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// AuthHandler 负责注册、登录和登出
type AuthHandler struct {
	userRepo repositories.UserRepository
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	return &AuthHandler{userRepo: userRepo}
}

// Register godoc
// @Summary 市民注册
// @Description 注册一个新的市民账号
// @Tags auth
// @Accept  json
// @Produce  json
// @Param registration body RegisterRequest true "注册信息"
// @Success 201 {object} utils.SuccessResponse{data=UserInfo} "注册成功"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 409 {object} utils.APIErrorResponse "邮箱已被注册"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if !utils.ValidateEmailFormat(req.Email) {
		utils.RespondValidationError(c, utils.ErrInvalidEmailFormat.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondInternalServerError(c, "无法处理密码", err.Error())
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Role:         models.RoleCitizen,
		BadgeLevel:   models.DefaultBadgeLevel,
	}
	if err := h.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			utils.RespondConflictError(c, "邮箱已被注册")
			return
		}
		utils.RespondInternalServerError(c, "注册失败", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusCreated, toUserInfo(user), "注册成功")
}

// Login godoc
// @Summary 用户登录
// @Description 验证凭证并返回 JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "登录成功，返回 Token 和用户信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "无效的邮箱或密码"
// @Failure 500 {object} utils.APIErrorResponse "无法生成Token"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, err := h.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		utils.RespondUnauthorizedError(c, "无效的邮箱或密码")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondUnauthorizedError(c, "无效的邮箱或密码")
		return
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &auth.Claims{
		UserID:       user.ID,
		Name:         user.Name,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "civicfix",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(configs.AppConfig.JWTSecret))
	if err != nil {
		utils.RespondInternalServerError(c, "无法生成Token", err.Error())
		return
	}

	loginResp := LoginResponse{
		Token: tokenString,
		User:  toUserInfo(user),
	}
	utils.RespondSuccess(c, http.StatusOK, loginResp, "登录成功")
}

// LogoutHandler godoc
// @Summary User logout
// @Description Logs out the current user by invalidating their token.
// @Tags auth
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 400 {object} utils.APIErrorResponse "错误的请求 (例如，上下文中缺少JTI或EXP)"
// @Router /auth/logout [post]
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	jtiVal, jtiExists := c.Get("jti")
	expVal, expExists := c.Get("exp")

	if !jtiExists || !expExists {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: JTI or EXP not found in context", nil)
		return
	}

	jti, okJTI := jtiVal.(string)
	exp, okEXP := expVal.(time.Time)

	if !okJTI || jti == "" {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid JTI", nil)
		return
	}
	if !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: Invalid EXP", nil)
		return
	}

	auth.AddToDenylist(jti, exp)
	utils.RespondSuccess(c, http.StatusOK, nil, "成功登出")
}

// Profile godoc
// @Summary 当前用户信息
// @Description 返回当前登录用户的资料、积分和徽章
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse{data=UserInfo}
// @Failure 401 {object} utils.APIErrorResponse "未认证"
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	user, err := h.userRepo.GetByID(actor.ID)
	if err != nil {
		utils.RespondNotFoundError(c, "用户")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, toUserInfo(user), "")
}

func toUserInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Points:       user.Points,
		BadgeLevel:   user.BadgeLevel,
		DepartmentID: user.DepartmentID,
	}
}
