package models

import "testing"

func TestParseListOrder(t *testing.T) {
	tests := []struct {
		input string
		want  ListOrder
	}{
		{"name_asc", OrderNameAsc},
		{"name_desc", OrderNameDesc},
		{"created_asc", OrderCreatedAsc},
		{"created_desc", OrderCreatedDesc},
		{"updated_asc", OrderUpdatedAsc},
		{"updated_desc", OrderUpdatedDesc},
		// Anything unrecognized falls back to name ascending
		{"", OrderNameAsc},
		{"size_desc", OrderNameAsc},
		{"NAME_ASC", OrderNameAsc},
		{"name_asc; DROP TABLE folders", OrderNameAsc},
	}

	for _, tt := range tests {
		if got := ParseListOrder(tt.input); got != tt.want {
			t.Errorf("ParseListOrder(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPermissionAllows(t *testing.T) {
	perm := &Permission{Read: true, Edit: true}

	if !perm.Allows(CapabilityRead) || !perm.Allows(CapabilityEdit) {
		t.Error("granted capabilities denied")
	}
	if perm.Allows(CapabilityModify) {
		t.Error("modify allowed without a grant")
	}

	var missing *Permission
	if missing.Allows(CapabilityRead) {
		t.Error("nil permission row must deny everything")
	}
}
