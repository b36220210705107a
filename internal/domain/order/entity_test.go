package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOrderDateNeverToday(t *testing.T) {
	// 2026-08-31 is a Monday: ordering for Monday rolls a full week out
	monday := date(2026, time.August, 31)
	next := NextOrderDate(menu.OrderDayMonday, monday)
	assert.Equal(t, date(2026, time.September, 7), next)

	// But Thursday of the same week is still reachable
	next = NextOrderDate(menu.OrderDayThursday, monday)
	assert.Equal(t, date(2026, time.September, 3), next)
}

func TestNextOrderDateMidWeek(t *testing.T) {
	// Wednesday
	wednesday := date(2026, time.September, 2)
	assert.Equal(t, date(2026, time.September, 7), NextOrderDate(menu.OrderDayMonday, wednesday))
	assert.Equal(t, date(2026, time.September, 3), NextOrderDate(menu.OrderDayThursday, wednesday))

	// Friday: both cycles land next week
	friday := date(2026, time.September, 4)
	assert.Equal(t, date(2026, time.September, 7), NextOrderDate(menu.OrderDayMonday, friday))
	assert.Equal(t, date(2026, time.September, 10), NextOrderDate(menu.OrderDayThursday, friday))
}

func TestNextOrderDateIgnoresTimeOfDay(t *testing.T) {
	lateSunday := time.Date(2026, time.August, 30, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, date(2026, time.August, 31), NextOrderDate(menu.OrderDayMonday, lateSunday))
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.UnixMilli(1756600000000)
	number := GenerateOrderNumber(now)

	assert.True(t, strings.HasPrefix(number, "SR-"))
	assert.Equal(t, strings.ToUpper(number), number)

	// Later timestamps produce different numbers
	assert.NotEqual(t, number, GenerateOrderNumber(now.Add(time.Second)))
}

func TestDiscountCodeIsUsable(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	maxUses := 5

	code := DiscountCode{
		DiscountType:       DiscountTypePercentage,
		DiscountValue:      10,
		MinimumOrderAmount: 3000,
		MaxUses:            &maxUses,
		CurrentUses:        4,
		IsActive:           true,
		ValidFrom:          &yesterday,
		ValidUntil:         &tomorrow,
	}

	assert.True(t, code.IsUsable(3500, now))
	assert.False(t, code.IsUsable(2500, now), "below code minimum")

	code.CurrentUses = 5
	assert.False(t, code.IsUsable(3500, now), "exhausted")
	code.CurrentUses = 4

	code.IsActive = false
	assert.False(t, code.IsUsable(3500, now))
	code.IsActive = true

	assert.False(t, code.IsUsable(3500, now.Add(48*time.Hour)), "expired")
	assert.False(t, code.IsUsable(3500, now.Add(-48*time.Hour)), "not started")
}

func TestDiscountCodeAmountOff(t *testing.T) {
	percent := DiscountCode{DiscountType: DiscountTypePercentage, DiscountValue: 15}
	assert.Equal(t, int64(600), percent.AmountOff(4000))

	fixed := DiscountCode{DiscountType: DiscountTypeFixed, DiscountValue: 500}
	assert.Equal(t, int64(500), fixed.AmountOff(4000))

	// A fixed discount never exceeds the subtotal
	big := DiscountCode{DiscountType: DiscountTypeFixed, DiscountValue: 9999}
	assert.Equal(t, int64(4000), big.AmountOff(4000))
}

func TestDeliveryAddressString(t *testing.T) {
	addr := DeliveryAddress{
		StreetAddress: "123 Peachtree St",
		City:          "Atlanta",
		State:         "GA",
		ZipCode:       "30303",
	}
	assert.Equal(t, "123 Peachtree St, Atlanta, GA 30303", addr.String())

	addr.ApartmentNumber = "Apt 4B"
	assert.Equal(t, "123 Peachtree St, Apt 4B, Atlanta, GA 30303", addr.String())
}

func TestOrderReminderEligibility(t *testing.T) {
	cases := map[OrderStatus]bool{
		OrderStatusPending:    false,
		OrderStatusInProgress: true,
		OrderStatusHold:       false,
		OrderStatusReady:      true,
		OrderStatusCompleted:  false,
		OrderStatusCanceled:   false,
	}
	for status, want := range cases {
		o := Order{Status: status}
		assert.Equal(t, want, o.IsReminderEligible(), string(status))
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusReady.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
}
