package returns

import (
	"errors"
	"fmt"
	"testing"

	"nextjs_to_go/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockEngine 在go-sqlmock之上构造引擎，不连接真实数据库
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

	return NewEngine(gdb), mock
}

// returnRequestRows 构造退换货申请查询结果
func returnRequestRows(id uint, status, returnType string, userID int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "order_id", "order_item_id", "user_id", "product_id", "return_type", "reason", "quantity", "refund_amount", "status"}).
		AddRow(id, 10, 20, userID, 30, returnType, models.ReturnReasonDefective, 1, 99.0, status)
}

// TestCreateReturnInvalidQuantity 数量非法时不触发任何SQL
func TestCreateReturnInvalidQuantity(t *testing.T) {
	engine, mock := newMockEngine(t)

	_, err := engine.CreateReturn(CreateParams{
		OrderItemID: 20,
		UserID:      7,
		ReturnType:  models.ReturnTypeReturn,
		Reason:      models.ReturnReasonDefective,
		Quantity:    0,
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("期望 ErrInvalidQuantity，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("数量校验前不应访问数据库: %v", err)
	}
}

// TestTransitionTerminalState 终态记录上的任何操作都被拒绝并回滚
func TestTransitionTerminalState(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `return_request_data`").
		WillReturnRows(returnRequestRows(1, StatusRejected, models.ReturnTypeReturn, 7))
	mock.ExpectRollback()

	_, err := engine.Transition(1, ActionApprove, TransitionParams{})
	if !errors.Is(err, ErrTerminalState) {
		t.Fatalf("期望 ErrTerminalState，实际 %v", err)
	}
	if ErrorKind(err) != KindTerminalStateViolation {
		t.Errorf("错误类型应为 %s，实际 %s", KindTerminalStateViolation, ErrorKind(err))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestTransitionInvalidAction 当前状态不允许的操作返回迁移错误
func TestTransitionInvalidAction(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `return_request_data`").
		WillReturnRows(returnRequestRows(1, StatusPending, models.ReturnTypeReturn, 7))
	mock.ExpectRollback()

	_, err := engine.Transition(1, ActionMarkReceived, TransitionParams{})

	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("期望 InvalidTransitionError，实际 %v", err)
	}
	if transitionErr.Action != ActionMarkReceived || transitionErr.From != StatusPending {
		t.Errorf("错误内容不符: %+v", transitionErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestTransitionUnknownAction 未知操作在查库前直接报错
func TestTransitionUnknownAction(t *testing.T) {
	engine, mock := newMockEngine(t)

	_, err := engine.Transition(1, "explode", TransitionParams{})
	if err == nil {
		t.Fatal("未知操作应返回错误")
	}
	fmt.Printf("未知操作错误: %v\n", err)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("未知操作不应访问数据库: %v", err)
	}
}

// TestTransitionApprove 同意退货：状态推进并联动订单状态，整体在一个事务内提交
func TestTransitionApprove(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `return_request_data`").
		WillReturnRows(returnRequestRows(1, StatusPending, models.ReturnTypeReturn, 7))
	mock.ExpectExec("UPDATE `order_data`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `return_request_data`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rr, err := engine.Transition(1, ActionApprove, TransitionParams{SellerNotes: "同意退货"})
	if err != nil {
		t.Fatalf("同意操作失败: %v", err)
	}
	if rr.Status != StatusApproved {
		t.Errorf("状态应为 %s，实际 %s", StatusApproved, rr.Status)
	}
	if rr.ApprovedAt == nil {
		t.Error("同意后应记录同意时间")
	}
	if rr.SellerNotes != "同意退货" {
		t.Errorf("卖家备注未保存: %s", rr.SellerNotes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestTransitionRejectRequiresReason 驳回必须填写原因
func TestTransitionRejectRequiresReason(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `return_request_data`").
		WillReturnRows(returnRequestRows(1, StatusPending, models.ReturnTypeReturn, 7))
	mock.ExpectRollback()

	_, err := engine.Transition(1, ActionReject, TransitionParams{})
	if !errors.Is(err, ErrRejectReasonRequired) {
		t.Fatalf("期望 ErrRejectReasonRequired，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestCancelReturnNotRequester 非申请人不能撤销
func TestCancelReturnNotRequester(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `return_request_data`").
		WillReturnRows(returnRequestRows(1, StatusPending, models.ReturnTypeReturn, 7))
	mock.ExpectRollback()

	_, err := engine.CancelReturn(1, 8)
	if !errors.Is(err, ErrNotRequester) {
		t.Fatalf("期望 ErrNotRequester，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}

// TestConfirmExchangeReceivedWrongState 换货确认收货只在已发货状态允许
func TestConfirmExchangeReceivedWrongState(t *testing.T) {
	engine, mock := newMockEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `return_request_data`").
		WillReturnRows(returnRequestRows(1, StatusApproved, models.ReturnTypeExchange, 7))
	mock.ExpectRollback()

	_, err := engine.ConfirmExchangeReceived(1, 7)

	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("期望 InvalidTransitionError，实际 %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("SQL期望未满足: %v", err)
	}
}
