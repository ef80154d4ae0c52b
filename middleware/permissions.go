package middleware

import "pos-kemasan/models"

// Permission names one guarded capability.
type Permission string

const (
	PermOrdersCreate          Permission = "orders.create"
	PermOrdersRead            Permission = "orders.read"
	PermOrdersStatus          Permission = "orders.status"
	PermOrdersQueueDesign     Permission = "orders.queue.design"
	PermOrdersQueueProduction Permission = "orders.queue.production"
	PermOrdersQueuePickup     Permission = "orders.queue.pickup"
	PermMaterialsRead         Permission = "materials.read"
	PermMaterialsUsage        Permission = "materials.usage"
	PermMaterialsManage       Permission = "materials.manage"
	PermMaterialsLogs         Permission = "materials.logs"
	PermCategoriesRead        Permission = "categories.read"
	PermCategoriesManage      Permission = "categories.manage"
	PermFinanceLogs           Permission = "finance.logs"
	PermReportsRead           Permission = "reports.read"
	PermUsersManage           Permission = "users.manage"
)

var permissions = map[Permission][]models.Role{
	PermOrdersCreate:          {models.RoleAdmin, models.RoleKasir},
	PermOrdersRead:            models.Roles,
	PermOrdersStatus:          {models.RoleAdmin, models.RoleKasir, models.RoleDesainer, models.RoleOperator},
	PermOrdersQueueDesign:     {models.RoleAdmin, models.RoleManajer, models.RoleDesainer},
	PermOrdersQueueProduction: {models.RoleAdmin, models.RoleManajer, models.RoleOperator},
	PermOrdersQueuePickup:     {models.RoleAdmin, models.RoleManajer, models.RoleKasir},
	PermMaterialsRead:         {models.RoleAdmin, models.RoleManajer, models.RoleOperator, models.RoleDesainer},
	PermMaterialsUsage:        {models.RoleAdmin, models.RoleOperator},
	PermMaterialsManage:       {models.RoleAdmin, models.RoleManajer},
	PermMaterialsLogs:         {models.RoleAdmin, models.RoleManajer, models.RoleOperator},
	PermCategoriesRead:        {models.RoleAdmin, models.RoleManajer, models.RoleOperator},
	PermCategoriesManage:      {models.RoleAdmin, models.RoleManajer},
	PermFinanceLogs:           {models.RoleAdmin, models.RoleKasir},
	PermReportsRead:           {models.RoleAdmin, models.RoleManajer},
	PermUsersManage:           {models.RoleAdmin},
}

// Allowed reports whether role holds p. Unknown permissions are denied.
func Allowed(p Permission, role models.Role) bool {
	for _, r := range permissions[p] {
		if r == role {
			return true
		}
	}
	return false
}
