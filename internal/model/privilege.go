package model

// Privilege codes checked by the shell before running an action
const (
	PrivProductManage  = "product:manage"
	PrivSaleCreate     = "sale:create"
	PrivSaleView       = "sale:view"
	PrivSaleDelete     = "sale:delete"
	PrivCustomerManage = "customer:manage"
	PrivReportView     = "report:view"
	PrivUserManage     = "user:manage"
	PrivSystemManage   = "system:manage"
)

// RolePrivileges maps each role to the privileges it grants.
// Cashiers run the store; only admins reach system settings.
var RolePrivileges = map[string][]string{
	RoleAdmin: {
		PrivProductManage, PrivSaleCreate, PrivSaleView, PrivSaleDelete,
		PrivCustomerManage, PrivReportView, PrivUserManage, PrivSystemManage,
	},
	RoleCashier: {
		PrivProductManage, PrivSaleCreate, PrivSaleView, PrivSaleDelete,
		PrivCustomerManage, PrivReportView,
	},
}
