package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"nextjs_to_go/config"
	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/notify"
	"nextjs_to_go/service/msg"
	"nextjs_to_go/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserController 用户控制器

type UserController struct{}

// verificationCodeKey 验证码在Redis中的键
func verificationCodeKey(mobile string) string {
	return fmt.Sprintf("sms:verification_code:%s", mobile)
}

// Register 用户注册
func (uc *UserController) Register(c *gin.Context) {
	var requestData struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required,min=6"`
		Mobile   string `json:"mobile"`
		Email    string `json:"email" binding:"omitempty,email"`
		Role     string `json:"role" binding:"omitempty,oneof=buyer seller"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + msg.TranslateBindError(err)})
		return
	}

	if requestData.Mobile != "" && !utils.IsValidPhone(requestData.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "手机号格式错误"})
		return
	}

	// 检查用户名是否已存在
	var count int64
	db.DB.Model(&models.User{}).Where("username = ?", requestData.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "用户名已存在"})
		return
	}

	// 密码加密存储
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(requestData.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("密码加密失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "注册失败"})
		return
	}

	role := requestData.Role
	if role == "" {
		role = models.RoleBuyer
	}

	user := models.User{
		Username:     requestData.Username,
		PasswordHash: string(passwordHash),
		Mobile:       requestData.Mobile,
		Email:        requestData.Email,
		Role:         role,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("创建用户失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "注册失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "注册成功",
		"data":    gin.H{"user_id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// Login 用户登录，支持密码和短信验证码两种方式
func (uc *UserController) Login(c *gin.Context) {
	var requestData struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Mobile   string `json:"mobile"`
		SmsCode  string `json:"sms_code"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + msg.TranslateBindError(err)})
		return
	}

	var user models.User
	if requestData.SmsCode != "" {
		// 短信验证码登录
		if requestData.Mobile == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "验证码登录必须提供手机号"})
			return
		}
		if db.RDB == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "验证码服务暂不可用"})
			return
		}

		storedCode, err := db.RDB.Get(c.Request.Context(), verificationCodeKey(requestData.Mobile)).Result()
		if err != nil || storedCode != requestData.SmsCode {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "验证码错误或已过期"})
			return
		}
		// 验证码一次性使用
		db.RDB.Del(c.Request.Context(), verificationCodeKey(requestData.Mobile))

		if err := db.DB.Where("mobile = ?", requestData.Mobile).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "该手机号未注册"})
			return
		}
	} else {
		// 密码登录
		if requestData.Username == "" || requestData.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "用户名和密码不能为空"})
			return
		}

		if err := db.DB.Where("username = ?", requestData.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "用户名或密码错误"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(requestData.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "用户名或密码错误"})
			return
		}
	}

	// 生成令牌
	cfg := config.LoadConfig()
	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role, cfg)
	if err != nil {
		log.Printf("生成令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "登录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "登录成功",
		"data": gin.H{
			"user_id":       user.ID,
			"username":      user.Username,
			"role":          user.Role,
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	})
}

// SendVerificationCode 发送登录验证码
func (uc *UserController) SendVerificationCode(c *gin.Context) {
	var requestData struct {
		Mobile string `json:"mobile" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + msg.TranslateBindError(err)})
		return
	}

	if !utils.IsValidPhone(requestData.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "手机号格式错误"})
		return
	}
	if db.RDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "验证码服务暂不可用"})
		return
	}

	code := utils.GenerateVerificationCode()
	// 验证码5分钟有效
	if err := db.RDB.Set(c.Request.Context(), verificationCodeKey(requestData.Mobile), code, 5*time.Minute).Err(); err != nil {
		log.Printf("验证码写入Redis失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "验证码发送失败"})
		return
	}

	if err := notify.SendVerificationCode(config.LoadConfig(), requestData.Mobile, code); err != nil {
		log.Printf("验证码短信发送失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "验证码发送失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "验证码已发送",
	})
}

// TokenRefresh 刷新访问令牌
func (uc *UserController) TokenRefresh(c *gin.Context) {
	var requestData struct {
		RefreshToken string `json:"refresh" binding:"required"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + msg.TranslateBindError(err)})
		return
	}

	cfg := config.LoadConfig()
	accessToken, err := utils.RefreshAccessToken(requestData.RefreshToken, cfg)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "刷新令牌无效或已过期"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"access": accessToken},
	})
}

// Profile 查询用户资料
func (uc *UserController) Profile(c *gin.Context) {
	var queryData struct {
		UserID int `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&queryData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求体格式错误"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, queryData.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "用户不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// UpdateProfile 更新用户资料
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var requestData struct {
		UserID int    `json:"user_id" binding:"required"`
		Mobile string `json:"mobile"`
		Email  string `json:"email" binding:"omitempty,email"`
	}

	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + msg.TranslateBindError(err)})
		return
	}

	var user models.User
	if err := db.DB.First(&user, requestData.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "用户不存在"})
		return
	}

	if requestData.Mobile != "" {
		if !utils.IsValidPhone(requestData.Mobile) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "手机号格式错误"})
			return
		}
		user.Mobile = requestData.Mobile
	}
	if requestData.Email != "" {
		user.Email = requestData.Email
	}

	if err := db.DB.Save(&user).Error; err != nil {
		log.Printf("更新用户资料失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "更新用户资料失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "资料更新成功",
		"data":    user,
	})
}
