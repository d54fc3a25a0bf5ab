package domain_test

import (
	"testing"

	"fieldstock/internal/domain"
)

func TestRecomputeStatus(t *testing.T) {
	cases := []struct {
		name string
		qty  int
		min  int
		cur  domain.StockStatus
		want domain.StockStatus
	}{
		{"zero is out of stock", 0, 10, domain.StatusNormal, domain.StatusOutOfStock},
		{"negative is out of stock", -1, 10, domain.StatusNormal, domain.StatusOutOfStock},
		{"below minimum is low", 3, 5, domain.StatusNormal, domain.StatusLowStock},
		{"at minimum is normal", 5, 5, domain.StatusLowStock, domain.StatusNormal},
		{"healthy is normal", 40, 10, domain.StatusNormal, domain.StatusNormal},
		{"reserved survives healthy stock", 40, 10, domain.StatusReserved, domain.StatusReserved},
		{"deprecated survives healthy stock", 40, 10, domain.StatusDeprecated, domain.StatusDeprecated},
		{"reserved loses to low stock", 3, 10, domain.StatusReserved, domain.StatusLowStock},
		{"deprecated loses to out of stock", 0, 10, domain.StatusDeprecated, domain.StatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := domain.Material{Quantity: tc.qty, MinStockLevel: tc.min, Status: tc.cur}
			if got := domain.RecomputeStatus(m); got != tc.want {
				t.Fatalf("qty=%d min=%d cur=%s: want %s, got %s", tc.qty, tc.min, tc.cur, tc.want, got)
			}
		})
	}
}
