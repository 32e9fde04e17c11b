package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

// OrderUsecase は決済リダイレクト後の注文参照と状態遷移。
// 成功ページがconfirm、キャンセルページがcancelを叩く。
type OrderUsecase struct {
	orderRepo repo.OrderRepository
	logger    *zap.Logger
}

func NewOrderUsecase(orderRepo repo.OrderRepository, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{orderRepo: orderRepo, logger: logger}
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// GetOrderByNumber は表示用の注文番号で1件返す。
func (u *OrderUsecase) GetOrderByNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	if orderNumber == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order number")
	}

	o, err := u.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

// ListMyOrders は認証済みユーザー自身の注文履歴。匿名は401。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID *int64, page int, limit int) (OrderListOutput, error) {
	if userID == nil {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "login required")
	}
	if page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.orderRepo.ListByUserID(ctx, *userID, page, limit)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// ConfirmPayment はpendingの注文をpaidにする（成功リダイレクト着地時）。
func (u *OrderUsecase) ConfirmPayment(ctx context.Context, orderNumber string) (model.Order, error) {
	return u.transition(ctx, orderNumber, model.OrderStatusPaid)
}

// CancelPayment はpendingの注文をcanceledにする（キャンセル着地時）。
func (u *OrderUsecase) CancelPayment(ctx context.Context, orderNumber string) (model.Order, error) {
	return u.transition(ctx, orderNumber, model.OrderStatusCanceled)
}

// 遷移できるのはpendingからのみ。確定済みの注文は動かさない。
func (u *OrderUsecase) transition(ctx context.Context, orderNumber string, to model.OrderStatus) (model.Order, error) {
	o, err := u.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return model.Order{}, err
	}

	if o.Status != model.OrderStatusPending {
		return model.Order{}, NewHTTPError(http.StatusConflict, "order is not pending")
	}

	if err := u.orderRepo.UpdateStatus(ctx, o.ID, to); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("order status updated",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", string(to)),
	)

	o.Status = to
	return o, nil
}
