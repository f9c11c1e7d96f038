package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatusTransitions(t *testing.T) {
	all := []DeliveryStatus{DeliveryStatusPlaced, DeliveryStatusShipping, DeliveryStatusDelivered}
	allowed := map[[2]DeliveryStatus]bool{
		{DeliveryStatusPlaced, DeliveryStatusShipping}:    true,
		{DeliveryStatusShipping, DeliveryStatusDelivered}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]DeliveryStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestDeliveryStatusAvailable(t *testing.T) {
	assert.Equal(t, []string{"Đã đặt hàng", "Đang giao hàng"}, DeliveryStatusPlaced.Available())
	assert.Equal(t, []string{"Đang giao hàng", "Đã giao hàng"}, DeliveryStatusShipping.Available())
	assert.Equal(t, []string{"Đã giao hàng"}, DeliveryStatusDelivered.Available())

	_, ok := DeliveryStatusDelivered.Next()
	assert.False(t, ok)
}

func TestParseDeliveryStatus(t *testing.T) {
	s, ok := ParseDeliveryStatus("Đang giao hàng")
	assert.True(t, ok)
	assert.Equal(t, DeliveryStatusShipping, s)

	for _, label := range []string{"", "shipped", "đang giao hàng", " Đang giao hàng"} {
		_, ok := ParseDeliveryStatus(label)
		assert.False(t, ok, "label %q", label)
	}
}

func TestParseRoleName(t *testing.T) {
	tests := []struct {
		in   string
		want RoleName
		ok   bool
	}{
		{"Customer", RoleCustomer, true},
		{"staff", RoleStaff, true},
		{"MANAGER", RoleManager, true},
		{"Admin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRoleName(tt.in)
		assert.Equal(t, tt.ok, ok, "role %q", tt.in)
		assert.Equal(t, tt.want, got, "role %q", tt.in)
	}
}
