package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memOrderRepo struct {
	orders map[string]model.Order
}

func (s *memOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	s.orders[order.OrderNumber] = order
	return order.ID, nil
}

func (s *memOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	o, ok := s.orders[orderNumber]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (s *memOrderRepo) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range s.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	for num, o := range s.orders {
		if o.ID == orderID {
			o.Status = status
			s.orders[num] = o
			return nil
		}
	}
	return repo.ErrNotFound
}

func newOrderTestServer() (*echo.Echo, *memOrderRepo) {
	orders := &memOrderRepo{orders: map[string]model.Order{
		"ORD-AB12CD34EF56": {
			ID:            7,
			OrderNumber:   "ORD-AB12CD34EF56",
			Amount:        9330,
			Currency:      "USD",
			Status:        model.OrderStatusPending,
			PaymentMethod: model.PaymentMethodStripe,
		},
	}}

	e := echo.New()
	NewOrderHandler(usecase.NewOrderUsecase(orders, zap.NewNop())).RegisterRoutes(e)
	return e, orders
}

func doOrder(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_GetByNumber(t *testing.T) {
	e, _ := newOrderTestServer()

	rec := doOrder(e, http.MethodGet, "/orders/ORD-AB12CD34EF56")
	assert.Equal(t, http.StatusOK, rec.Code)

	var o model.Order
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, int64(9330), o.Amount)
	assert.Equal(t, model.OrderStatusPending, o.Status)
}

func TestOrderHandler_GetByNumber_NotFound(t *testing.T) {
	e, _ := newOrderTestServer()

	rec := doOrder(e, http.MethodGet, "/orders/ORD-NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// 成功ページの着地でpending→paid
func TestOrderHandler_Confirm(t *testing.T) {
	e, orders := newOrderTestServer()

	rec := doOrder(e, http.MethodPost, "/orders/ORD-AB12CD34EF56/confirm")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.OrderStatusPaid, orders.orders["ORD-AB12CD34EF56"].Status)

	//二重確定は409
	rec = doOrder(e, http.MethodPost, "/orders/ORD-AB12CD34EF56/confirm")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderHandler_Cancel(t *testing.T) {
	e, orders := newOrderTestServer()

	rec := doOrder(e, http.MethodPost, "/orders/ORD-AB12CD34EF56/cancel")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.OrderStatusCanceled, orders.orders["ORD-AB12CD34EF56"].Status)
}

// 匿名での履歴取得は401
func TestOrderHandler_ListMine_Anonymous(t *testing.T) {
	e, _ := newOrderTestServer()

	rec := doOrder(e, http.MethodGet, "/orders")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
