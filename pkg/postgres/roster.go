package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// GetEmployees retrieves all employee records
func (d *DB) GetEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, street, postal_code, city, location, role,
		       weekly_hours, hours_worked_this_week, preferred_working_days,
		       preferred_hours_start, preferred_hours_end, is_active, is_archived
		FROM employees
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		var role string
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Street, &e.PostalCode, &e.City,
			&e.Location, &role, &e.WeeklyHours, &e.HoursWorkedThisWeek, &e.PreferredWorkingDays,
			&e.PreferredWorkingHoursStart, &e.PreferredWorkingHoursEnd, &e.IsActive, &e.IsArchived); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Role = model.Role(role)
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// UpsertEmployees inserts or replaces employee records by id
func (d *DB) UpsertEmployees(ctx context.Context, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range employees {
		_, err := tx.Exec(ctx, `
			INSERT INTO employees (id, first_name, last_name, email, street, postal_code, city, location, role,
			                       weekly_hours, hours_worked_this_week, preferred_working_days,
			                       preferred_hours_start, preferred_hours_end, is_active, is_archived)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			ON CONFLICT (id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				email = EXCLUDED.email,
				street = EXCLUDED.street,
				postal_code = EXCLUDED.postal_code,
				city = EXCLUDED.city,
				location = EXCLUDED.location,
				role = EXCLUDED.role,
				weekly_hours = EXCLUDED.weekly_hours,
				hours_worked_this_week = EXCLUDED.hours_worked_this_week,
				preferred_working_days = EXCLUDED.preferred_working_days,
				preferred_hours_start = EXCLUDED.preferred_hours_start,
				preferred_hours_end = EXCLUDED.preferred_hours_end,
				is_active = EXCLUDED.is_active,
				is_archived = EXCLUDED.is_archived
		`, e.ID, e.FirstName, e.LastName, e.Email, e.Street, e.PostalCode, e.City, e.Location, string(e.Role),
			e.WeeklyHours, e.HoursWorkedThisWeek, nonNil(e.PreferredWorkingDays),
			e.PreferredWorkingHoursStart, e.PreferredWorkingHoursEnd, e.IsActive, e.IsArchived)
		if err != nil {
			return fmt.Errorf("failed to upsert employee %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetClients retrieves all client records
func (d *DB) GetClients(ctx context.Context) ([]model.Client, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, short_name, name, street, zip_city, address_suffix, customer_type, email,
		       preferred_employee_ids, rejected_employee_ids, recommended_start_time, recommended_hours,
		       staff_needed, is_archived
		FROM clients
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		var customerType string
		if err := rows.Scan(&c.ID, &c.ShortName, &c.Name, &c.Street, &c.ZipCity, &c.AddressSuffix, &customerType, &c.Email,
			&c.PreferredEmployeeIDs, &c.RejectedEmployeeIDs, &c.RecommendedStartTime,
			&c.RecommendedHours, &c.StaffNeeded, &c.IsArchived); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c.CustomerType = model.CustomerType(customerType)
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// UpsertClients inserts or replaces client records by id
func (d *DB) UpsertClients(ctx context.Context, clients []model.Client) error {
	if len(clients) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range clients {
		_, err := tx.Exec(ctx, `
			INSERT INTO clients (id, short_name, name, street, zip_city, address_suffix, customer_type, email,
			                     preferred_employee_ids, rejected_employee_ids, recommended_start_time,
			                     recommended_hours, staff_needed, is_archived)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO UPDATE SET
				short_name = EXCLUDED.short_name,
				name = EXCLUDED.name,
				street = EXCLUDED.street,
				zip_city = EXCLUDED.zip_city,
				address_suffix = EXCLUDED.address_suffix,
				customer_type = EXCLUDED.customer_type,
				email = EXCLUDED.email,
				preferred_employee_ids = EXCLUDED.preferred_employee_ids,
				rejected_employee_ids = EXCLUDED.rejected_employee_ids,
				recommended_start_time = EXCLUDED.recommended_start_time,
				recommended_hours = EXCLUDED.recommended_hours,
				staff_needed = EXCLUDED.staff_needed,
				is_archived = EXCLUDED.is_archived
		`, c.ID, c.ShortName, c.Name, c.Street, c.ZipCity, c.AddressSuffix, string(c.CustomerType), c.Email,
			nonNil(c.PreferredEmployeeIDs),
			nonNil(c.RejectedEmployeeIDs), c.RecommendedStartTime, c.RecommendedHours, c.StaffNeeded, c.IsArchived)
		if err != nil {
			return fmt.Errorf("failed to upsert client %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAbsences retrieves all absence records
func (d *DB) GetAbsences(ctx context.Context) ([]model.Absence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, employee_id, start_date, end_date, reason, status
		FROM absences
		ORDER BY start_date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []model.Absence
	for rows.Next() {
		var a model.Absence
		var start, end *time.Time
		if err := rows.Scan(&a.ID, &a.EmployeeID, &start, &end, &a.Reason, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		a.StartDate = formatDate(start)
		a.EndDate = formatDate(end)
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}

	return absences, nil
}
