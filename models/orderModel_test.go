package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuLookup(items map[string]*MenuItem) func(string) (*MenuItem, error) {
	return func(itemId string) (*MenuItem, error) {
		item, ok := items[itemId]
		if !ok {
			return nil, ErrItemNotFound
		}
		return item, nil
	}
}

func sampleMenu() map[string]*MenuItem {
	available := true
	unavailable := false
	return map[string]*MenuItem{
		"biryani": {Item_id: "biryani", Name: "Veg Biryani", Price: 80, Available: &available, Service_type: ServiceCanteen},
		"chai":    {Item_id: "chai", Name: "Masala Chai", Price: 10, Available: &available, Service_type: ServiceCanteen},
		"soldout": {Item_id: "soldout", Name: "Chicken Curry", Price: 120, Available: &unavailable, Service_type: ServiceCanteen},
		"binding": {Item_id: "binding", Name: "Spiral Binding", Price: 15, Available: &available, Service_type: ServiceXerox},
	}
}

func TestBuildOrderItemsPricesFromMenu(t *testing.T) {
	cart := []CartItem{
		{Item_id: "biryani", Quantity: 2},
		{Item_id: "chai", Quantity: 3},
	}

	items, total, err := BuildOrderItems(cart, ServiceCanteen, menuLookup(sampleMenu()))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Veg Biryani", items[0].Name)
	assert.Equal(t, 80.0, items[0].Price)
	assert.Equal(t, 160.0, items[0].Total)
	assert.Equal(t, 30.0, items[1].Total)
	assert.Equal(t, 190.0, total)
}

func TestBuildOrderItemsRejectsEmptyCart(t *testing.T) {
	_, _, err := BuildOrderItems(nil, ServiceCanteen, menuLookup(sampleMenu()))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderItemsAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		cart    []CartItem
		wantErr error
	}{
		{
			name:    "unknown item",
			cart:    []CartItem{{Item_id: "biryani", Quantity: 1}, {Item_id: "missing", Quantity: 1}},
			wantErr: ErrItemNotFound,
		},
		{
			name:    "unavailable item",
			cart:    []CartItem{{Item_id: "biryani", Quantity: 1}, {Item_id: "soldout", Quantity: 1}},
			wantErr: ErrItemUnavailable,
		},
		{
			name:    "wrong service type",
			cart:    []CartItem{{Item_id: "biryani", Quantity: 1}, {Item_id: "binding", Quantity: 1}},
			wantErr: ErrWrongServiceType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := BuildOrderItems(tt.cart, ServiceCanteen, menuLookup(sampleMenu()))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, items)
			assert.Zero(t, total)
		})
	}
}

func TestOrderTransitionTable(t *testing.T) {
	allowed := []struct{ from, to string }{
		{OrderPending, OrderPreparing},
		{OrderPending, OrderCancelled},
		{OrderPreparing, OrderReady},
		{OrderPreparing, OrderCancelled},
		{OrderReady, OrderCompleted},
		{OrderReady, OrderCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{OrderPending, OrderReady},
		{OrderPending, OrderCompleted},
		{OrderPreparing, OrderPending},
		{OrderReady, OrderPreparing},
		{OrderCompleted, OrderCancelled},
		{OrderCancelled, OrderPending},
		{OrderCancelled, OrderCancelled},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestIsOrderStatus(t *testing.T) {
	for _, status := range []string{OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled} {
		assert.True(t, IsOrderStatus(status))
	}
	assert.False(t, IsOrderStatus("shipped"))
	assert.False(t, IsOrderStatus(""))
}

func TestQRDataSnapshotsOrder(t *testing.T) {
	order := Order{
		Order_id: "o1",
		User_id:  "u1",
		Total:    190,
		Items: []OrderItem{
			{Name: "Veg Biryani", Quantity: 2, Price: 80, Total: 160},
			{Name: "Masala Chai", Quantity: 3, Price: 10, Total: 30},
		},
	}

	payload := order.QRData()
	assert.Equal(t, "o1", payload.Order_id)
	assert.Equal(t, "u1", payload.User_id)
	assert.Equal(t, 190.0, payload.Total)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, QRPayloadItem{Name: "Veg Biryani", Quantity: 2}, payload.Items[0])
}
