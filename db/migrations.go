package db

import (
	"fmt"
	"log"

	"nextjs_to_go/models"
)

// RunMigrations 运行数据库迁移
// 此函数用于同步所有模型的数据库结构
func RunMigrations() {
	log.Println("开始运行数据库迁移...")

	// 同步所有模型
	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Vendor{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.Campaign{},
		&models.CampaignProductRegistration{},
		&models.ReturnRequest{},
		&models.AccessToken{},
	}

	// 循环同步每个模型
	for _, model := range modelsToMigrate {
		modelName := fmt.Sprintf("%T", model)
		if err := DB.AutoMigrate(model); err != nil {
			log.Printf("同步%v模型结构失败: %v", modelName, err)
		} else {
			log.Printf("%v 模型结构同步成功", modelName)
		}
	}

	log.Println("数据库迁移完成！")
}
