// Package navigation builds the client workspace menu. Entries stay visible
// when disabled; enforcement is the access guard's job.
package navigation

import (
	"strings"

	"backoffice/internal/verification"
)

type MenuItem struct {
	Name     string     `json:"name"`
	Route    string     `json:"route"`
	Icon     string     `json:"icon"`
	Enabled  bool       `json:"enabled"`
	Active   bool       `json:"active"`
	Expanded bool       `json:"expanded,omitempty"`
	Children []MenuItem `json:"children,omitempty"`

	alwaysEnabled bool
}

func clientMenu() []MenuItem {
	return []MenuItem{
		{Name: "Dashboard", Route: "/client-user/dashboard", Icon: "grid-outline"},
		{
			Name: "Employee Mgmt", Route: "/client-user/employees", Icon: "people-circle-outline",
			Children: []MenuItem{
				{Name: "All Employees", Route: "/client-user/employees", Icon: "list-outline"},
				{Name: "Add Employee", Route: "/client-user/employees/create", Icon: "person-add-outline"},
				{Name: "Bulk Import", Route: "/client-user/employees/import", Icon: "cloud-upload-outline"},
			},
		},
		{
			Name: "Beneficiaries", Route: "/client-user/beneficiaries", Icon: "person-outline",
			Children: []MenuItem{
				{Name: "All Beneficiaries", Route: "/client-user/beneficiaries", Icon: "list-outline"},
				{Name: "Add Beneficiary", Route: "/client-user/beneficiaries/create", Icon: "person-add-outline"},
			},
		},
		{
			Name: "Payments", Route: "/client-user/payments", Icon: "card-outline",
			Children: []MenuItem{
				{Name: "Payment History", Route: "/client-user/payments", Icon: "time-outline"},
				{Name: "Initiate Payment", Route: "/client-user/payments/create", Icon: "add-circle-outline"},
			},
		},
		{
			Name: "Salary Disbursement", Route: "/client-user/salary", Icon: "cash-outline",
			Children: []MenuItem{
				{Name: "Salary History", Route: "/client-user/salary", Icon: "time-outline"},
				{Name: "Disburse Salary", Route: "/client-user/salary/disburse", Icon: "cash-outline"},
				{Name: "Batch Salary", Route: "/client-user/salary/batch", Icon: "document-text-outline"},
			},
		},
		{
			Name: "Documents", Route: "/client-user/documents", Icon: "document-text-outline", alwaysEnabled: true,
			Children: []MenuItem{
				{Name: "All Documents", Route: "/client-user/documents", Icon: "folder-outline", alwaysEnabled: true},
				{Name: "Upload Document", Route: "/client-user/documents/upload", Icon: "cloud-upload-outline", alwaysEnabled: true},
			},
		},
		{Name: "Reports", Route: "/client-user/reports", Icon: "document-text-outline"},
	}
}

// Build returns a fresh menu for status with the entries for currentRoute
// marked active. Every entry is enabled iff status is Verified, except the
// Documents entries which are always enabled.
func Build(status verification.Status, currentRoute string) []MenuItem {
	verified := status == verification.StatusVerified
	items := clientMenu()
	for i := range items {
		item := &items[i]
		item.Enabled = verified || item.alwaysEnabled
		for j := range item.Children {
			item.Children[j].Enabled = verified || item.Children[j].alwaysEnabled
		}
		markActive(item, currentRoute)
	}
	return items
}

// markActive flags the parent and the single most specific matching child.
func markActive(item *MenuItem, route string) {
	item.Active = matches(item.Route, route)
	best := -1
	for j := range item.Children {
		child := &item.Children[j]
		if matches(child.Route, route) && (best < 0 || len(child.Route) > len(item.Children[best].Route)) {
			best = j
		}
	}
	if best >= 0 {
		item.Children[best].Active = true
		item.Active = true
		item.Expanded = true
	}
}

func matches(itemRoute, route string) bool {
	return route == itemRoute || strings.HasPrefix(route, itemRoute+"/")
}

// Breadcrumbs names the active path: parent then child, or a lone leaf.
func Breadcrumbs(items []MenuItem) []string {
	for _, item := range items {
		if len(item.Children) > 0 {
			for _, child := range item.Children {
				if child.Active {
					return []string{item.Name, child.Name}
				}
			}
			continue
		}
		if item.Active {
			return []string{item.Name}
		}
	}
	return []string{}
}
