package models

type OrderStatus string

const (
	StatusAntrianDesain   OrderStatus = "Antrian Desain"
	StatusProsesDesain    OrderStatus = "Proses Desain"
	StatusAntrianProduksi OrderStatus = "Antrian Produksi"
	StatusProsesProduksi  OrderStatus = "Proses Produksi"
	StatusSiapDiambil     OrderStatus = "Siap Diambil"
	StatusSelesai         OrderStatus = "Selesai"
)

// OrderStatuses lists the workflow stages in order.
var OrderStatuses = []OrderStatus{
	StatusAntrianDesain,
	StatusProsesDesain,
	StatusAntrianProduksi,
	StatusProsesProduksi,
	StatusSiapDiambil,
	StatusSelesai,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusSelesai
}

// Transition is one accepted edge of the order workflow.
type Transition struct {
	From  OrderStatus
	To    OrderStatus
	Roles []Role
	// RequiresDesign marks the shortcut that skips the design stage; it is
	// only taken when every item already arrives with a finished design.
	RequiresDesign bool
}

func (t Transition) AllowedFor(role Role) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var transitions = map[OrderStatus]map[OrderStatus]Transition{
	StatusAntrianDesain: {
		StatusProsesDesain: {
			From: StatusAntrianDesain, To: StatusProsesDesain,
			Roles: []Role{RoleAdmin, RoleDesainer},
		},
		StatusAntrianProduksi: {
			From: StatusAntrianDesain, To: StatusAntrianProduksi,
			Roles:          []Role{RoleAdmin, RoleDesainer},
			RequiresDesign: true,
		},
	},
	StatusProsesDesain: {
		StatusAntrianProduksi: {
			From: StatusProsesDesain, To: StatusAntrianProduksi,
			Roles: []Role{RoleAdmin, RoleDesainer},
		},
	},
	StatusAntrianProduksi: {
		StatusProsesProduksi: {
			From: StatusAntrianProduksi, To: StatusProsesProduksi,
			Roles: []Role{RoleAdmin, RoleOperator},
		},
	},
	StatusProsesProduksi: {
		StatusSiapDiambil: {
			From: StatusProsesProduksi, To: StatusSiapDiambil,
			Roles: []Role{RoleAdmin, RoleOperator},
		},
	},
	StatusSiapDiambil: {
		StatusSelesai: {
			From: StatusSiapDiambil, To: StatusSelesai,
			Roles: []Role{RoleAdmin, RoleKasir},
		},
	},
}

// FindTransition looks up the edge from -> to. The second result is false
// when the workflow has no such edge.
func FindTransition(from, to OrderStatus) (Transition, bool) {
	t, ok := transitions[from][to]
	return t, ok
}

// NextStatuses returns the statuses reachable from s in workflow order.
func NextStatuses(s OrderStatus) []OrderStatus {
	var next []OrderStatus
	for _, st := range OrderStatuses {
		if _, ok := transitions[s][st]; ok {
			next = append(next, st)
		}
	}
	return next
}
