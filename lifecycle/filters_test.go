package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-marketplace-api/lifecycle"
)

func boardFixture() []lifecycle.Order {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []lifecycle.Order{
		{
			ID: "ord-1", Customer: "Alice", Status: lifecycle.StatusPreparing,
			DeliveryType: lifecycle.DeliveryPickup, OrderTime: base,
			Items: []lifecycle.Item{{Name: "Double Burger", Quantity: 1, UnitPrice: 9}},
		},
		{
			ID: "ord-2", Customer: "Bob", Status: lifecycle.StatusReady,
			DeliveryType: lifecycle.DeliveryDelivery, OrderTime: base.Add(30 * time.Minute),
			Items: []lifecycle.Item{{Name: "Pad Thai", Quantity: 2, UnitPrice: 11}},
		},
		{
			ID: "ord-3", Customer: "BURGERFAN99", Status: lifecycle.StatusCompleted,
			DeliveryType: lifecycle.DeliveryDelivery, OrderTime: base.Add(time.Hour),
			Items: []lifecycle.Item{{Name: "Green Curry", Quantity: 1, UnitPrice: 12}},
		},
		{
			ID: "ord-4", Customer: "Dana", Status: lifecycle.StatusCancelled,
			DeliveryType: lifecycle.DeliveryPickup, OrderTime: base.Add(2 * time.Hour),
			Items: []lifecycle.Item{{Name: "Lemonade", Quantity: 3, UnitPrice: 3}},
		},
		{
			ID: "ord-5", Customer: "Eve", Status: lifecycle.StatusPreparing,
			DeliveryType: lifecycle.DeliveryDelivery, OrderTime: base.Add(3 * time.Hour),
			Items: []lifecycle.Item{{Name: "Veggie burger", Quantity: 1, UnitPrice: 8}},
		},
	}
}

func TestPartitionActiveAndHistory(t *testing.T) {
	active, history := lifecycle.Partition(boardFixture())

	require.Len(t, active, 3)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"ord-1", "ord-2", "ord-5"}, ids(active))
	assert.Equal(t, []string{"ord-3", "ord-4"}, ids(history))
}

func TestSearchMatchesIDCustomerAndItems(t *testing.T) {
	orders := boardFixture()

	// case-insensitive match across item name and customer name
	result := lifecycle.Search(orders, "burger")
	assert.Equal(t, []string{"ord-1", "ord-3", "ord-5"}, ids(result))

	result = lifecycle.Search(orders, "ORD-2")
	assert.Equal(t, []string{"ord-2"}, ids(result))

	assert.Empty(t, lifecycle.Search(orders, "sushi"))
	assert.Len(t, lifecycle.Search(orders, ""), len(orders))
}

func TestFilterStatus(t *testing.T) {
	orders := boardFixture()

	assert.Equal(t, []string{"ord-1", "ord-5"}, ids(lifecycle.FilterStatus(orders, "preparing")))
	assert.Len(t, lifecycle.FilterStatus(orders, "all"), len(orders))
	assert.Len(t, lifecycle.FilterStatus(orders, ""), len(orders))
	assert.Empty(t, lifecycle.FilterStatus(orders, "no_such_status"))
}

func TestFilterDelivery(t *testing.T) {
	orders := boardFixture()

	// 2 pickup, 3 delivery
	assert.Len(t, lifecycle.FilterDelivery(orders, "pickup"), 2)
	assert.Len(t, lifecycle.FilterDelivery(orders, "delivery"), 3)
	assert.Len(t, lifecycle.FilterDelivery(orders, "all"), len(orders))
}

func TestFilterIntervalBoundsInclusive(t *testing.T) {
	orders := boardFixture()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	result := lifecycle.FilterInterval(orders, base.Add(30*time.Minute), base.Add(2*time.Hour))
	assert.Equal(t, []string{"ord-2", "ord-3", "ord-4"}, ids(result))

	// open bounds
	assert.Len(t, lifecycle.FilterInterval(orders, time.Time{}, time.Time{}), len(orders))
	assert.Equal(t, []string{"ord-4", "ord-5"}, ids(lifecycle.FilterInterval(orders, base.Add(2*time.Hour), time.Time{})))
}

func TestCountByStatus(t *testing.T) {
	counts := lifecycle.CountByStatus(boardFixture())

	assert.Equal(t, 2, counts[lifecycle.StatusPreparing])
	assert.Equal(t, 1, counts[lifecycle.StatusReady])
	assert.Equal(t, 1, counts[lifecycle.StatusCompleted])
	assert.Equal(t, 1, counts[lifecycle.StatusCancelled])
}

func ids(orders []lifecycle.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
