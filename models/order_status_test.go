package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		got, ok := ParseOrderStatus(string(s))
		assert.True(t, ok, s)
		assert.Equal(t, s, got)
	}

	_, ok := ParseOrderStatus("antrian desain")
	assert.False(t, ok)
	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		roles    []Role
		design   bool
	}{
		{StatusAntrianDesain, StatusProsesDesain, []Role{RoleAdmin, RoleDesainer}, false},
		{StatusAntrianDesain, StatusAntrianProduksi, []Role{RoleAdmin, RoleDesainer}, true},
		{StatusProsesDesain, StatusAntrianProduksi, []Role{RoleAdmin, RoleDesainer}, false},
		{StatusAntrianProduksi, StatusProsesProduksi, []Role{RoleAdmin, RoleOperator}, false},
		{StatusProsesProduksi, StatusSiapDiambil, []Role{RoleAdmin, RoleOperator}, false},
		{StatusSiapDiambil, StatusSelesai, []Role{RoleAdmin, RoleKasir}, false},
	}
	for _, tc := range cases {
		tr, ok := FindTransition(tc.from, tc.to)
		require.True(t, ok, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.design, tr.RequiresDesign)
		for _, r := range Roles {
			want := false
			for _, allowed := range tc.roles {
				want = want || allowed == r
			}
			assert.Equal(t, want, tr.AllowedFor(r), "%s -> %s as %s", tc.from, tc.to, r)
		}
	}
}

func TestNoBackwardOrSkippingEdges(t *testing.T) {
	illegal := [][2]OrderStatus{
		{StatusProsesDesain, StatusAntrianDesain},
		{StatusAntrianDesain, StatusSelesai},
		{StatusAntrianProduksi, StatusSiapDiambil},
		{StatusSelesai, StatusAntrianDesain},
		{StatusSiapDiambil, StatusProsesProduksi},
	}
	for _, pair := range illegal {
		_, ok := FindTransition(pair[0], pair[1])
		assert.False(t, ok, "%s -> %s", pair[0], pair[1])
	}
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []OrderStatus{StatusProsesDesain, StatusAntrianProduksi}, NextStatuses(StatusAntrianDesain))
	assert.Equal(t, []OrderStatus{StatusSelesai}, NextStatuses(StatusSiapDiambil))
	assert.Empty(t, NextStatuses(StatusSelesai))
	assert.True(t, StatusSelesai.IsTerminal())
	assert.False(t, StatusSiapDiambil.IsTerminal())
}

func TestItemsTotalAndAllDesigned(t *testing.T) {
	items := []OrderItem{
		{Quantity: 100, PricePerItem: decimal.RequireFromString("1500"), HasDesign: true},
		{Quantity: 3, PricePerItem: decimal.RequireFromString("2500.50"), HasDesign: false},
	}
	assert.True(t, decimal.RequireFromString("157501.50").Equal(ItemsTotal(items)))
	assert.False(t, AllDesigned(items))

	items[1].HasDesign = true
	assert.True(t, AllDesigned(items))
	assert.False(t, AllDesigned(nil))
}
