package models

// ListOrder selects the sort order for folder and file listings. The set is
// closed; the SQL fragment for each value lives with the repository.
type ListOrder string

const (
	OrderNameAsc     ListOrder = "name_asc"
	OrderNameDesc    ListOrder = "name_desc"
	OrderCreatedAsc  ListOrder = "created_asc"
	OrderCreatedDesc ListOrder = "created_desc"
	OrderUpdatedAsc  ListOrder = "updated_asc"
	OrderUpdatedDesc ListOrder = "updated_desc"
)

// ParseListOrder maps a query-string value onto the closed order set.
// Unrecognized values fall back to name ascending rather than erroring, so
// new clients can probe orders against old servers.
func ParseListOrder(s string) ListOrder {
	switch ListOrder(s) {
	case OrderNameAsc, OrderNameDesc, OrderCreatedAsc, OrderCreatedDesc, OrderUpdatedAsc, OrderUpdatedDesc:
		return ListOrder(s)
	default:
		return OrderNameAsc
	}
}
