package campaign

import (
	"context"
	"fmt"
	"log"
	"time"

	"nextjs_to_go/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 审核决定常量
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Engine 活动商品报名引擎
// 库存校验和写入必须针对同一商品规格串行执行：
// 引擎先抢占Redis分布式锁（按商品+规格分键），再在事务内对商品行加锁，
// 两层保护确保校验时计算的可用库存在提交时仍然成立
type Engine struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewEngine 创建报名引擎，rdb可为nil（降级为仅数据库行锁）
func NewEngine(gdb *gorm.DB, rdb *redis.Client) *Engine {
	return &Engine{db: gdb, rdb: rdb}
}

// stockLockKey 生成商品规格粒度的锁键
func stockLockKey(productID uint, variantID *uint) string {
	return fmt.Sprintf("campaign:stock_lock:%d:%d", productID, models.VariantKey(variantID))
}

// lockStock 抢占商品规格锁，返回释放函数
func (e *Engine) lockStock(ctx context.Context, productID uint, variantID *uint) (func(), error) {
	if e.rdb == nil {
		return func() {}, nil
	}

	key := stockLockKey(productID, variantID)
	deadline := time.Now().Add(3 * time.Second)
	for {
		ok, err := e.rdb.SetNX(ctx, key, 1, 5*time.Second).Result()
		if err != nil {
			return nil, fmt.Errorf("获取库存锁失败: %v", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("库存锁等待超时: %s", key)
		}
		time.Sleep(50 * time.Millisecond)
	}

	return func() {
		if err := e.rdb.Del(context.Background(), key).Err(); err != nil {
			log.Printf("释放库存锁失败: %v", err)
		}
	}, nil
}

// variantCond 规格过滤条件，NULL规格与具体规格分别处理
func variantCond(query *gorm.DB, variantID *uint) *gorm.DB {
	if variantID == nil {
		return query.Where("variant_id IS NULL")
	}
	return query.Where("variant_id = ?", *variantID)
}

// RegisterProduct 卖家将商品报名进活动
// 校验顺序固定：活动状态 → 数量 → 本活动重复报名 → 跨活动窗口冲突 → 可用库存
func (e *Engine) RegisterProduct(ctx context.Context, campaignID, vendorID, productID uint, variantID *uint, quantity int) (*models.CampaignProductRegistration, error) {
	unlock, err := e.lockStock(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var reg models.CampaignProductRegistration
	err = e.db.Transaction(func(tx *gorm.DB) error {
		var camp models.Campaign
		if err := tx.First(&camp, campaignID).Error; err != nil {
			return err
		}
		if camp.Status != models.CampaignStatusDraft && camp.Status != models.CampaignStatusUpcoming {
			return ErrCampaignNotRegistrable
		}

		if quantity <= 0 {
			return ErrInvalidQuantity
		}

		// 同一活动内同一商品规格只允许一条活跃报名
		var dupCount int64
		dupQuery := tx.Model(&models.CampaignProductRegistration{}).
			Where("campaign_id = ?", campaignID).
			Where("product_id = ?", productID).
			Where("status IN ?", models.RegistrationActiveStatuses)
		if err := variantCond(dupQuery, variantID).Count(&dupCount).Error; err != nil {
			return err
		}
		if dupCount > 0 {
			return ErrAlreadyRegistered
		}

		if err := e.checkConflict(tx, &camp, productID, variantID, 0); err != nil {
			return err
		}

		available, err := e.availableStockTx(tx, productID, variantID, 0)
		if err != nil {
			return err
		}
		if quantity > available {
			return &InsufficientStockError{Available: available}
		}

		reg = models.CampaignProductRegistration{
			CampaignID: campaignID,
			VendorID:   vendorID,
			ProductID:  productID,
			VariantID:  variantID,
			Quantity:   quantity,
			Status:     models.RegistrationStatusPending,
		}
		return tx.Create(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// UpdateRegistration 修改报名数量或规格
// 校验逻辑与报名一致，但可用库存的计算排除本条报名已占用的数量
func (e *Engine) UpdateRegistration(ctx context.Context, registrationID uint, quantity int, variantID *uint) (*models.CampaignProductRegistration, error) {
	// 先读出报名以确定锁键
	var existing models.CampaignProductRegistration
	if err := e.db.First(&existing, registrationID).Error; err != nil {
		return nil, err
	}

	unlock, err := e.lockStock(ctx, existing.ProductID, variantID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var reg models.CampaignProductRegistration
	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reg, registrationID).Error; err != nil {
			return err
		}

		if quantity <= 0 {
			return ErrInvalidQuantity
		}

		var camp models.Campaign
		if err := tx.First(&camp, reg.CampaignID).Error; err != nil {
			return err
		}

		// 换规格时检查新规格在本活动内是否已有其他活跃报名
		if !models.SameVariant(reg.VariantID, variantID) {
			var dupCount int64
			dupQuery := tx.Model(&models.CampaignProductRegistration{}).
				Where("campaign_id = ?", reg.CampaignID).
				Where("product_id = ?", reg.ProductID).
				Where("id <> ?", reg.ID).
				Where("status IN ?", models.RegistrationActiveStatuses)
			if err := variantCond(dupQuery, variantID).Count(&dupCount).Error; err != nil {
				return err
			}
			if dupCount > 0 {
				return ErrAlreadyRegistered
			}
		}

		if err := e.checkConflict(tx, &camp, reg.ProductID, variantID, reg.ID); err != nil {
			return err
		}

		available, err := e.availableStockTx(tx, reg.ProductID, variantID, reg.ID)
		if err != nil {
			return err
		}
		if quantity > available {
			return &InsufficientStockError{Available: available}
		}

		reg.Quantity = quantity
		reg.VariantID = variantID
		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// RemoveRegistration 卖家撤回报名，无状态限制，撤回后立即释放占用数量
// 活动进行中是否允许撤回由调用界面把关，引擎不做限制
func (e *Engine) RemoveRegistration(registrationID uint) error {
	result := e.db.Delete(&models.CampaignProductRegistration{}, registrationID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReviewRegistration 管理员审核报名
func (e *Engine) ReviewRegistration(registrationID uint, decision string, reviewerID int, rejectionReason string) (*models.CampaignProductRegistration, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, fmt.Errorf("未知的审核决定: %s", decision)
	}

	var reg models.CampaignProductRegistration
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reg, registrationID).Error; err != nil {
			return err
		}

		if reg.IsDecided() {
			return ErrAlreadyReviewed
		}

		if decision == DecisionApprove {
			now := time.Now()
			reg.Status = models.RegistrationStatusApproved
			reg.ApprovedAt = &now
		} else {
			if rejectionReason == "" {
				return ErrRejectReasonRequired
			}
			reg.Status = models.RegistrationStatusRejected
			reg.RejectionReason = rejectionReason
		}
		reg.ReviewerID = &reviewerID
		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListRegistrations 查询活动下的报名，vendorID为0时返回全部卖家的报名
// 每次都是新查询，不做任何进程内缓存
func (e *Engine) ListRegistrations(campaignID uint, vendorID uint) ([]models.CampaignProductRegistration, error) {
	query := e.db.Where("campaign_id = ?", campaignID)
	if vendorID > 0 {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var regs []models.CampaignProductRegistration
	if err := query.Order("registered_at DESC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// ComputeAvailableStock 计算商品规格的可用库存（物理库存减去其他活跃报名的占用）
// 展示层与校验共用此计算，每次从头重算
func (e *Engine) ComputeAvailableStock(productID uint, variantID *uint) (int, error) {
	return e.availableStock(e.db, productID, variantID, 0, false)
}

// availableStockTx 事务内的可用库存计算，对商品/规格行加锁
func (e *Engine) availableStockTx(tx *gorm.DB, productID uint, variantID *uint, excludeRegistrationID uint) (int, error) {
	return e.availableStock(tx, productID, variantID, excludeRegistrationID, true)
}

func (e *Engine) availableStock(tx *gorm.DB, productID uint, variantID *uint, excludeRegistrationID uint, forUpdate bool) (int, error) {
	query := tx
	if forUpdate {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	// 物理库存：无规格取商品库存，有规格取规格库存
	var stock int
	if variantID == nil {
		var product models.Product
		if err := query.First(&product, productID).Error; err != nil {
			return 0, err
		}
		stock = product.Stock
	} else {
		var variant models.ProductVariant
		if err := query.First(&variant, *variantID).Error; err != nil {
			return 0, err
		}
		stock = variant.Stock
	}

	// 其他活跃报名已占用的数量，跨所有活动统计
	sumQuery := tx.Model(&models.CampaignProductRegistration{}).
		Where("product_id = ?", productID).
		Where("status IN ?", models.RegistrationActiveStatuses)
	sumQuery = variantCond(sumQuery, variantID)
	if excludeRegistrationID > 0 {
		sumQuery = sumQuery.Where("id <> ?", excludeRegistrationID)
	}

	var reserved int64
	if err := sumQuery.Select("COALESCE(SUM(quantity), 0)").Row().Scan(&reserved); err != nil {
		return 0, err
	}

	return stock - int(reserved), nil
}

// checkConflict 跨活动窗口冲突检测
// 同一商品规格不允许同时报名两个时间窗口重叠且未结束的活动
func (e *Engine) checkConflict(tx *gorm.DB, camp *models.Campaign, productID uint, variantID *uint, excludeRegistrationID uint) error {
	otherQuery := tx.
		Where("campaign_id <> ?", camp.ID).
		Where("product_id = ?", productID).
		Where("status IN ?", models.RegistrationActiveStatuses)
	otherQuery = variantCond(otherQuery, variantID)
	if excludeRegistrationID > 0 {
		otherQuery = otherQuery.Where("id <> ?", excludeRegistrationID)
	}

	var others []models.CampaignProductRegistration
	if err := otherQuery.Order("id").Find(&others).Error; err != nil {
		return err
	}

	for _, other := range others {
		var otherCamp models.Campaign
		if err := tx.First(&otherCamp, other.CampaignID).Error; err != nil {
			return err
		}
		if otherCamp.Status == models.CampaignStatusEnded {
			continue
		}
		if CampaignsOverlap(camp, &otherCamp) {
			return &ConflictError{CampaignID: otherCamp.ID, CampaignName: otherCamp.Name}
		}
	}
	return nil
}
