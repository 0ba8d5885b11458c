package campaign

import (
	"context"
	"errors"
	"testing"

	"nextjs_to_go/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockEngine 在go-sqlmock之上构造引擎，不依赖Redis（降级为仅数据库行锁）
func newMockEngine(t *testing.T) (*Engine, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("创建sqlmock失败: %v", err)
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("打开gorm连接失败: %v", err)
	}

	return NewEngine(gdb, nil), mock
}

// campaignRows 构造活动查询结果
func campaignRows(id uint, name, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "type", "discount_value", "start_date", "end_date", "status", "campaign_type"}).
		AddRow(id, name, models.CampaignDiscountPercentage, 10.0, day(1), day(10), status, models.CampaignTypeRegular)
}

// countRows 构造计数查询结果
func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

// TestRegisterProductCampaignNotRegistrable 进行中的活动不接受报名
func TestRegisterProductCampaignNotRegistrable(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(1, "秋季大促", models.CampaignStatusActive))
	mock.ExpectRollback()

	_, err := engine.RegisterProduct(context.Background(), 1, 5, 30, nil, 10)
	if !errors.Is(err, ErrCampaignNotRegistrable) {
		t.Fatalf("期望 ErrCampaignNotRegistrable，实际 %v", err)
	}
	if ErrorKind(err) != KindCampaignNotRegistrable {
		t.Errorf("错误类型应为 %s，实际 %s", KindCampaignNotRegistrable, ErrorKind(err))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestRegisterProductInvalidQuantity 报名数量必须为正整数
func TestRegisterProductInvalidQuantity(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(1, "秋季大促", models.CampaignStatusDraft))
	mock.ExpectRollback()

	_, err := engine.RegisterProduct(context.Background(), 1, 5, 30, nil, 0)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("期望 ErrInvalidQuantity，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestRegisterProductDuplicate 同一活动内同一商品规格只允许一条活跃报名
func TestRegisterProductDuplicate(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(1, "秋季大促", models.CampaignStatusDraft))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `campaign_product_registration_data`").
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	_, err := engine.RegisterProduct(context.Background(), 1, 5, 30, nil, 10)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("期望 ErrAlreadyRegistered，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestRegisterProductConflict 跨活动窗口冲突，错误中带上冲突活动的名称
func TestRegisterProductConflict(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(1, "秋季大促", models.CampaignStatusUpcoming))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `campaign_product_registration_data`").
		WillReturnRows(countRows(0))
	// 同一商品在另一个活动存在活跃报名
	mock.ExpectQuery("SELECT (.+) FROM `campaign_product_registration_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "vendor_id", "product_id", "variant_id", "quantity", "status"}).
			AddRow(9, 2, 5, 30, nil, 8, models.RegistrationStatusApproved))
	// 另一个活动的时间窗口与本活动重叠
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(2, "限时抢购", models.CampaignStatusUpcoming))
	mock.ExpectRollback()

	_, err := engine.RegisterProduct(context.Background(), 1, 5, 30, nil, 10)

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("期望 ConflictError，实际 %v", err)
	}
	if conflictErr.CampaignID != 2 || conflictErr.CampaignName != "限时抢购" {
		t.Errorf("冲突信息不符: %+v", conflictErr)
	}
	if ErrorKind(err) != KindCampaignConflict {
		t.Errorf("错误类型应为 %s，实际 %s", KindCampaignConflict, ErrorKind(err))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestRegisterProductInsufficientStock 可用库存 = 物理库存 - 其他活跃报名占用
func TestRegisterProductInsufficientStock(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(1, "秋季大促", models.CampaignStatusDraft))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `campaign_product_registration_data`").
		WillReturnRows(countRows(0))
	// 无跨活动冲突
	mock.ExpectQuery("SELECT (.+) FROM `campaign_product_registration_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "vendor_id", "product_id", "variant_id", "quantity", "status"}))
	// 物理库存10，其他活跃报名已占8，可报名2
	mock.ExpectQuery("SELECT (.+) FROM `product_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name", "price", "stock", "status"}).
			AddRow(30, 5, "保温杯", 59.0, 10, "on_sale"))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"reserved"}).AddRow(8))
	mock.ExpectRollback()

	_, err := engine.RegisterProduct(context.Background(), 1, 5, 30, nil, 5)

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("期望 InsufficientStockError，实际 %v", err)
	}
	if stockErr.Available != 2 {
		t.Errorf("可报名数量应为2，实际 %d", stockErr.Available)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestRegisterProductSuccess 全部校验通过后创建待审核报名
func TestRegisterProductSuccess(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_data`").
		WillReturnRows(campaignRows(1, "秋季大促", models.CampaignStatusDraft))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `campaign_product_registration_data`").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT (.+) FROM `campaign_product_registration_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "vendor_id", "product_id", "variant_id", "quantity", "status"}))
	mock.ExpectQuery("SELECT (.+) FROM `product_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "name", "price", "stock", "status"}).
			AddRow(30, 5, "保温杯", 59.0, 10, "on_sale"))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"reserved"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `campaign_product_registration_data`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reg, err := engine.RegisterProduct(context.Background(), 1, 5, 30, nil, 5)
	if err != nil {
		t.Fatalf("报名失败: %v", err)
	}
	if reg.Status != models.RegistrationStatusPending {
		t.Errorf("新报名应为待审核状态，实际 %s", reg.Status)
	}
	if reg.Quantity != 5 {
		t.Errorf("报名数量应为5，实际 %d", reg.Quantity)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestReviewRegistrationAlreadyReviewed 已审核过的报名不能重复审核
func TestReviewRegistrationAlreadyReviewed(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_product_registration_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "vendor_id", "product_id", "variant_id", "quantity", "status"}).
			AddRow(9, 1, 5, 30, nil, 8, models.RegistrationStatusApproved))
	mock.ExpectRollback()

	_, err := engine.ReviewRegistration(9, DecisionReject, 1, "重复商品")
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("期望 ErrAlreadyReviewed，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestReviewRegistrationRejectRequiresReason 驳回必须填写原因
func TestReviewRegistrationRejectRequiresReason(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `campaign_product_registration_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "vendor_id", "product_id", "variant_id", "quantity", "status"}).
			AddRow(9, 1, 5, 30, nil, 8, models.RegistrationStatusPending))
	mock.ExpectRollback()

	_, err := engine.ReviewRegistration(9, DecisionReject, 1, "")
	if !errors.Is(err, ErrRejectReasonRequired) {
		t.Fatalf("期望 ErrRejectReasonRequired，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestReviewRegistrationUnknownDecision 未知审核决定在查库前直接报错
func TestReviewRegistrationUnknownDecision(t *testing.T) {
	engine, mock := newMockEngine(t)

	_, err := engine.ReviewRegistration(9, "maybe", 1, "")
	if err == nil {
		t.Fatal("未知审核决定应返回错误")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("未知决定不应访问数据库: %v", err)
	}
}
