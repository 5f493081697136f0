package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Sale"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Catalog
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	// Branches & stock
	{Code: "branch:view", Name: "View Branch"},
	{Code: "branch:create", Name: "Create Branch"},
	{Code: "stock:view", Name: "View Stock"},
	{Code: "stock:update", Name: "Update Stock"},
	// Customers
	{Code: "customer:view", Name: "View Customer"},
	{Code: "customer:create", Name: "Create Customer"},
	// Sales
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Create Sale"},
	{Code: "sale:edit", Name: "Edit Sale Items"},
	{Code: "sale:void", Name: "Void Sale"},
	{Code: "sale:permissions", Name: "Toggle Sale Edit/Void Flags"},
	// Transfers
	{Code: "transfer:view", Name: "View Transfer"},
	{Code: "transfer:create", Name: "Create Transfer"},
	{Code: "transfer:ship", Name: "Process Transfer Shipment"},
	{Code: "transfer:receive", Name: "Confirm Transfer Reception"},
	{Code: "transfer:cancel", Name: "Cancel Transfer"},
	{Code: "transfer:edit", Name: "Edit Transfer"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
