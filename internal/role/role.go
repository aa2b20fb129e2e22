// Package role maps dashboard roles and their tabs to the record panels each
// tab displays.
package role

import (
	"fmt"
	"strings"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// Role is the kind of user a dashboard is rendered for.
type Role string

const (
	Customer Role = "customer"
	Lawyer   Role = "lawyer"
	Admin    Role = "admin"
)

// Roles lists every role.
var Roles = []Role{Customer, Lawyer, Admin}

// ParseRole converts s into a Role. Matching ignores case and surrounding
// whitespace.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case Customer, Lawyer, Admin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Tab is a dashboard section.
type Tab string

const (
	TabFindLawyer    Tab = "find-lawyer"
	TabHistory       Tab = "history"
	TabCases         Tab = "cases"
	TabAppointments  Tab = "appointments"
	TabNotifications Tab = "notifications"
	TabDashboard     Tab = "dashboard"
	TabPending       Tab = "pending"
	TabLawyers       Tab = "lawyers"
	TabCustomers     Tab = "customers"
)

// Tabs returns the tabs available to r, in display order.
func Tabs(r Role) []Tab {
	switch r {
	case Customer:
		return []Tab{TabFindLawyer, TabHistory, TabCases, TabAppointments, TabNotifications}
	case Lawyer:
		return []Tab{TabDashboard, TabCases, TabAppointments}
	case Admin:
		return []Tab{TabPending, TabLawyers, TabCustomers}
	}
	return nil
}

// DefaultTab returns the tab shown when none is selected.
func DefaultTab(r Role) Tab {
	if tabs := Tabs(r); len(tabs) > 0 {
		return tabs[0]
	}
	return ""
}

// Panel is one record list on a dashboard tab. Criteria are fixed by the
// panel and always apply on top of whatever the caller filters by.
type Panel struct {
	Name     string         `json:"name"`
	Kind     model.Kind     `json:"kind"`
	Criteria model.Criteria `json:"criteria,omitempty"`
}

// Panels returns the panels shown on tab for role r. An empty tab selects the
// role's default tab.
func Panels(r Role, tab Tab) ([]Panel, error) {
	if tab == "" {
		tab = DefaultTab(r)
	}
	switch r {
	case Customer:
		return customerPanels(tab)
	case Lawyer:
		return lawyerPanels(tab)
	case Admin:
		return adminPanels(tab)
	}
	return nil, fmt.Errorf("unknown role %q", r)
}

func customerPanels(tab Tab) ([]Panel, error) {
	switch tab {
	case TabFindLawyer:
		return []Panel{{Name: "lawyers", Kind: model.KindLawyer, Criteria: model.Criteria{"status": "verified"}}}, nil
	case TabHistory:
		return []Panel{{Name: "history", Kind: model.KindHistory}}, nil
	case TabCases:
		return []Panel{{Name: "cases", Kind: model.KindCase}}, nil
	case TabAppointments:
		return []Panel{{Name: "appointments", Kind: model.KindAppointment}}, nil
	case TabNotifications:
		return []Panel{{Name: "notifications", Kind: model.KindNotification}}, nil
	}
	return nil, unknownTab(Customer, tab)
}

func lawyerPanels(tab Tab) ([]Panel, error) {
	switch tab {
	case TabDashboard:
		return []Panel{
			{Name: "requests", Kind: model.KindAppointment, Criteria: model.Criteria{"status": "pending"}},
			{Name: "active-cases", Kind: model.KindCase, Criteria: model.Criteria{"status": "active"}},
		}, nil
	case TabCases:
		return []Panel{{Name: "cases", Kind: model.KindCase}}, nil
	case TabAppointments:
		return []Panel{{Name: "appointments", Kind: model.KindAppointment}}, nil
	}
	return nil, unknownTab(Lawyer, tab)
}

func adminPanels(tab Tab) ([]Panel, error) {
	switch tab {
	case TabPending:
		return []Panel{{Name: "pending", Kind: model.KindLawyer, Criteria: model.Criteria{"status": "pending"}}}, nil
	case TabLawyers:
		return []Panel{{Name: "lawyers", Kind: model.KindLawyer, Criteria: model.Criteria{"status": "verified"}}}, nil
	case TabCustomers:
		return []Panel{{Name: "customers", Kind: model.KindCustomer}}, nil
	}
	return nil, unknownTab(Admin, tab)
}

func unknownTab(r Role, tab Tab) error {
	return fmt.Errorf("role %s has no tab %q", r, tab)
}
