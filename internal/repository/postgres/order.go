package postgres

import (
	"lempek/internal/domain/models"
)

// orderClause maps the closed ListOrder set onto fixed ORDER BY fragments.
// User input never reaches query text: unknown values were already folded to
// name-ascending by models.ParseListOrder, and this switch only ever returns
// one of the constants below.
func orderClause(order models.ListOrder) string {
	switch order {
	case models.OrderNameDesc:
		return "name DESC"
	case models.OrderCreatedAsc:
		return "created_at ASC"
	case models.OrderCreatedDesc:
		return "created_at DESC"
	case models.OrderUpdatedAsc:
		return "updated_at ASC"
	case models.OrderUpdatedDesc:
		return "updated_at DESC"
	default:
		return "name ASC"
	}
}
