package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
)

func TestOrderCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	cid := seedClient(t, db, "acme")
	widget := seedProduct(t, db, "widget", 250)
	gadget := seedProduct(t, db, "gadget", 99)
	orders := NewOrders(db)
	ctx := context.Background()

	id, err := orders.Create(ctx, cid, []model.InsertOrderItem{
		{Pid: widget, Amount: 3, UnitPrice: 250},
		{Pid: gadget, Amount: 2, UnitPrice: 99},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	dto, err := orders.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, cid, dto.Order.Cid)
	assert.Equal(t, model.StatusUnpaid, dto.Order.Status)
	assert.Len(t, dto.Order.OrderID, 72, "order id is two concatenated uuids")
	require.Len(t, dto.OrderItems, 2)
	assert.Equal(t, uint64(3*250+2*99), dto.Total)
}

func TestOrderCreateAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	cid := seedClient(t, db, "acme")
	widget := seedProduct(t, db, "widget", 250)
	orders := NewOrders(db)
	ctx := context.Background()

	// Last line references a product that does not exist; the FK violation
	// must roll back the header and the lines before it.
	_, err := orders.Create(ctx, cid, []model.InsertOrderItem{
		{Pid: widget, Amount: 3, UnitPrice: 250},
		{Pid: 9999, Amount: 1, UnitPrice: 10},
	})
	require.ErrorIs(t, err, errs.ErrConstraintViolation)

	var headers, lines int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&headers))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&lines))
	assert.Zero(t, headers)
	assert.Zero(t, lines)
}

func TestOrderGetMissing(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrders(db)

	_, err := orders.Get(context.Background(), 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestOrderUpdateStatusPermissive(t *testing.T) {
	db := newTestDB(t)
	cid := seedClient(t, db, "acme")
	widget := seedProduct(t, db, "widget", 250)
	orders := NewOrders(db)
	ctx := context.Background()

	id, err := orders.Create(ctx, cid, []model.InsertOrderItem{
		{Pid: widget, Amount: 1, UnitPrice: 250},
	})
	require.NoError(t, err)

	// Any status overwrites any other, including going backwards.
	for _, status := range []model.OrderStatus{
		model.StatusFinished, model.StatusPaid, model.StatusUnpaid,
	} {
		rows, err := orders.UpdateStatus(ctx, id, status)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), rows)

		dto, err := orders.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, dto.Order.Status)
	}

	rows, err := orders.UpdateStatus(ctx, 9999, model.StatusPaid)
	require.NoError(t, err)
	assert.Zero(t, rows, "missing order affects no rows")
}

func TestOrderPageOfClient(t *testing.T) {
	db := newTestDB(t)
	cid := seedClient(t, db, "acme")
	other := seedClient(t, db, "globex")
	widget := seedProduct(t, db, "widget", 250)
	orders := NewOrders(db)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := orders.Create(ctx, cid, []model.InsertOrderItem{
			{Pid: widget, Amount: 1, UnitPrice: 250},
		})
		require.NoError(t, err)
	}
	_, err := orders.Create(ctx, other, []model.InsertOrderItem{
		{Pid: widget, Amount: 1, UnitPrice: 250},
	})
	require.NoError(t, err)

	page, err := orders.PageOfClient(ctx, cid, model.PageQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), page.Total)
	assert.Equal(t, uint64(2), page.CurrentPage)
	assert.Equal(t, uint64(2), page.TotalPages)
	require.Len(t, page.Data, 2)
	for _, dto := range page.Data {
		assert.Equal(t, cid, dto.Order.Cid)
		assert.Equal(t, uint64(250), dto.Total)
	}
}
