package sheetsclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// Column names in the employees tab. Only the first two must be present.
var employeeFields = []string{
	"ID",
	"First name",
	"Last name",
	"Email",
	"Street",
	"Postal code",
	"City",
	"Location",
	"Role",
	"Weekly hours",
	"Hours this week",
	"Preferred days",
	"Preferred start",
	"Preferred end",
	"Active",
}

var requiredEmployeeFields = []string{"ID", "First name"}

// Column names in the clients tab. Only the first two must be present.
var clientFields = []string{
	"ID",
	"Name",
	"Short name",
	"Street",
	"Zip/City",
	"Address suffix",
	"Customer type",
	"Email",
	"Preferred employees",
	"Rejected employees",
	"Recommended start",
	"Recommended hours",
	"Staff needed",
}

var requiredClientFields = []string{"ID", "Name"}

// ListEmployees retrieves and parses employees from the configured roster tab
func (c *Client) ListEmployees(ctx context.Context, cfg *config.RosterConfig) ([]model.Employee, error) {
	values, err := c.GetValues(ctx, cfg.SpreadsheetID, cfg.EmployeesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("employees tab is empty")
	}

	employees, err := ParseEmployees(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse employees: %w", err)
	}

	return employees, nil
}

// ListClients retrieves and parses clients from the configured roster tab
func (c *Client) ListClients(ctx context.Context, cfg *config.RosterConfig) ([]model.Client, error) {
	values, err := c.GetValues(ctx, cfg.SpreadsheetID, cfg.ClientsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get client data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("clients tab is empty")
	}

	clients, err := ParseClients(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clients: %w", err)
	}

	return clients, nil
}

// ParseEmployees converts raw spreadsheet data into Employee structs.
// Rows without an ID are skipped.
func ParseEmployees(raw [][]interface{}) ([]model.Employee, error) {
	cols, err := newColumns(raw, employeeFields, requiredEmployeeFields)
	if err != nil {
		return nil, err
	}

	employees := make([]model.Employee, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := cols.get("ID", row)
		if id == "" {
			continue
		}

		weeklyHours, err := cols.number("Weekly hours", row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		worked, err := cols.number("Hours this week", row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		role := model.Role(cols.get("Role", row))
		if role == "" {
			role = model.RoleCleaner
		}

		employees = append(employees, model.Employee{
			ID:                         id,
			FirstName:                  cols.get("First name", row),
			LastName:                   cols.get("Last name", row),
			Email:                      cols.get("Email", row),
			Street:                     cols.get("Street", row),
			PostalCode:                 cols.get("Postal code", row),
			City:                       cols.get("City", row),
			Location:                   cols.get("Location", row),
			Role:                       role,
			WeeklyHours:                weeklyHours,
			HoursWorkedThisWeek:        worked,
			PreferredWorkingDays:       splitList(cols.get("Preferred days", row)),
			PreferredWorkingHoursStart: cols.get("Preferred start", row),
			PreferredWorkingHoursEnd:   cols.get("Preferred end", row),
			IsActive:                   parseActive(cols.get("Active", row)),
		})
	}

	return employees, nil
}

// ParseClients converts raw spreadsheet data into Client structs.
// Rows without an ID are skipped.
func ParseClients(raw [][]interface{}) ([]model.Client, error) {
	cols, err := newColumns(raw, clientFields, requiredClientFields)
	if err != nil {
		return nil, err
	}

	clients := make([]model.Client, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := cols.get("ID", row)
		if id == "" {
			continue
		}

		hours, err := cols.number("Recommended hours", row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		staff, err := cols.number("Staff needed", row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		clients = append(clients, model.Client{
			ID:                   id,
			Name:                 cols.get("Name", row),
			ShortName:            cols.get("Short name", row),
			Street:               cols.get("Street", row),
			ZipCity:              cols.get("Zip/City", row),
			AddressSuffix:        cols.get("Address suffix", row),
			CustomerType:         model.CustomerType(cols.get("Customer type", row)),
			Email:                cols.get("Email", row),
			PreferredEmployeeIDs: splitList(cols.get("Preferred employees", row)),
			RejectedEmployeeIDs:  splitList(cols.get("Rejected employees", row)),
			RecommendedStartTime: cols.get("Recommended start", row),
			RecommendedHours:     hours,
			StaffNeeded:          int(staff),
		})
	}

	return clients, nil
}

// columns maps column names to their index in the header row
type columns map[string]int

func newColumns(raw [][]interface{}, fields, required []string) (columns, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	h := make(columns)
	for i, cell := range raw[0] {
		name, ok := cell.(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		for _, field := range fields {
			if name == field {
				h[field] = i
			}
		}
	}

	for _, field := range required {
		if _, ok := h[field]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
	}

	return h, nil
}

// get returns the trimmed cell for field, or empty when the column or cell is absent
func (h columns) get(field string, row []interface{}) string {
	index, ok := h[field]
	if !ok || index >= len(row) {
		return ""
	}
	switch v := row[index].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// number parses a numeric cell. Empty cells are zero.
func (h columns) number(field string, row []interface{}) (float64, error) {
	s := h.get(field, row)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", strings.ToLower(field), s)
	}
	return n, nil
}

// splitList splits a comma separated cell, dropping blanks
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseActive treats a blank cell as active
func parseActive(s string) bool {
	switch strings.ToLower(s) {
	case "", "yes", "y", "true", "active", "1":
		return true
	}
	return false
}
