package controllers

import (
	"log"
	"net/http"

	"nextjs_to_go/db"
	"nextjs_to_go/models"
	"nextjs_to_go/utils"

	"github.com/gin-gonic/gin"
)

// AccessTokenController 接口调用令牌控制器

type AccessTokenController struct{}

// GetToken 签发接口调用令牌
func (atc *AccessTokenController) GetToken(c *gin.Context) {
	var requestData struct {
		Description string `json:"description"`
	}

	// 请求体可为空
	if err := c.ShouldBindJSON(&requestData); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "请求数据无效: " + err.Error()})
		return
	}

	tokenStr, err := utils.GenerateAccessToken()
	if err != nil {
		log.Printf("生成接口令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "生成接口令牌失败"})
		return
	}

	token := models.AccessToken{
		AccessToken: tokenStr,
		IPAddress:   c.ClientIP(),
		Description: requestData.Description,
	}

	if err := db.DB.Create(&token).Error; err != nil {
		log.Printf("保存接口令牌失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "保存接口令牌失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "令牌签发成功",
		"data":    gin.H{"access_token": token.AccessToken},
	})
}
