package lifecycle

import (
	"strings"
	"time"
)

// Pure derived reads over a snapshot. None of these mutate or reorder the
// input; they return filtered views for the live board.

// Partition splits a snapshot into active (preparing or ready) and history
// (completed or cancelled) orders, preserving order.
func Partition(orders []Order) (active, history []Order) {
	for _, o := range orders {
		if IsTerminal(o.Status) {
			history = append(history, o)
		} else {
			active = append(active, o)
		}
	}
	return active, history
}

// Search keeps orders whose id, customer name, or any item name contains the
// query as a case-insensitive substring. An empty query keeps everything.
func Search(orders []Order, query string) []Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return orders
	}
	var out []Order
	for _, o := range orders {
		if matchesQuery(o, query) {
			out = append(out, o)
		}
	}
	return out
}

func matchesQuery(o Order, query string) bool {
	if strings.Contains(strings.ToLower(o.ID), query) ||
		strings.Contains(strings.ToLower(o.Customer), query) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), query) {
			return true
		}
	}
	return false
}

// FilterStatus keeps orders with the exact status; "" or "all" disables the filter
func FilterStatus(orders []Order, status string) []Order {
	if status == "" || status == "all" {
		return orders
	}
	var out []Order
	for _, o := range orders {
		if o.Status == Status(status) {
			out = append(out, o)
		}
	}
	return out
}

// FilterDelivery keeps orders with the exact delivery type; "" or "all" disables the filter
func FilterDelivery(orders []Order, deliveryType string) []Order {
	if deliveryType == "" || deliveryType == "all" {
		return orders
	}
	var out []Order
	for _, o := range orders {
		if o.DeliveryType == DeliveryType(deliveryType) {
			out = append(out, o)
		}
	}
	return out
}

// FilterInterval keeps orders whose order time falls within [from, to],
// bounds inclusive. A zero bound leaves that side open.
func FilterInterval(orders []Order, from, to time.Time) []Order {
	if from.IsZero() && to.IsZero() {
		return orders
	}
	var out []Order
	for _, o := range orders {
		if !from.IsZero() && o.OrderTime.Before(from) {
			continue
		}
		if !to.IsZero() && o.OrderTime.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// CountByStatus aggregates per-status counts over the given set
func CountByStatus(orders []Order) map[Status]int {
	counts := make(map[Status]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}
