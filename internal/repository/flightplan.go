package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightplan/flightplan/internal/auth"
	"github.com/flightplan/flightplan/internal/model"
)

// ErrFlightPlanNotFound indicates no flight plan matched the given id.
var ErrFlightPlanNotFound = errors.New("flight plan not found")

const flightPlanColumns = `
	flight_plan_id, altitude, airspeed, aircraft_identification, aircraft_type,
	arrival_airport, departing_airport, flight_type, departure_time,
	estimated_arrival_time, route, remarks, fuel_hours, fuel_minutes, number_onboard`

// ListFlightPlans returns all flight plans. Order is not guaranteed;
// every call re-fetches the full set from the store.
func (r *Repository) ListFlightPlans(ctx context.Context) ([]model.FlightPlan, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Release(conn)

	query := `SELECT` + flightPlanColumns + ` FROM flight_plans`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flight plans: %w", err)
	}
	defer rows.Close()

	var plans []model.FlightPlan
	for rows.Next() {
		plan, err := scanFlightPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flight plans: %w", err)
	}

	return plans, nil
}

// GetFlightPlan retrieves a flight plan by its id.
func (r *Repository) GetFlightPlan(ctx context.Context, id string) (*model.FlightPlan, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Release(conn)

	query := `SELECT` + flightPlanColumns + ` FROM flight_plans WHERE flight_plan_id = $1`

	plan, err := scanFlightPlan(conn.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightPlanNotFound
		}
		return nil, fmt.Errorf("failed to get flight plan: %w", err)
	}

	return &plan, nil
}

// CreateFlightPlan inserts a new flight plan. Any caller-supplied id is
// overwritten with a freshly generated one; the stored record is returned.
func (r *Repository) CreateFlightPlan(ctx context.Context, plan model.FlightPlan) (*model.FlightPlan, error) {
	id, err := auth.NewKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate flight plan id: %w", err)
	}
	plan.FlightPlanID = id

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Release(conn)

	query := `
		INSERT INTO flight_plans (` + flightPlanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = conn.Exec(ctx, query,
		plan.FlightPlanID,
		plan.Altitude,
		plan.Airspeed,
		plan.AircraftIdentification,
		plan.AircraftType,
		plan.ArrivalAirport,
		plan.DepartingAirport,
		plan.FlightType,
		plan.DepartureTime,
		plan.EstimatedArrivalTime,
		plan.Route,
		plan.Remarks,
		plan.FuelHours,
		plan.FuelMinutes,
		plan.NumberOnboard,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create flight plan: %w", err)
	}

	return &plan, nil
}

// UpdateFlightPlan overwrites all fields of the flight plan matching
// plan.FlightPlanID. Returns true iff exactly one row was modified;
// a zero-row match is a normal false result, not an error.
func (r *Repository) UpdateFlightPlan(ctx context.Context, plan model.FlightPlan) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer r.pool.Release(conn)

	query := `
		UPDATE flight_plans
		SET altitude = $2, airspeed = $3, aircraft_identification = $4,
		    aircraft_type = $5, arrival_airport = $6, departing_airport = $7,
		    flight_type = $8, departure_time = $9, estimated_arrival_time = $10,
		    route = $11, remarks = $12, fuel_hours = $13, fuel_minutes = $14,
		    number_onboard = $15
		WHERE flight_plan_id = $1
	`

	result, err := conn.Exec(ctx, query,
		plan.FlightPlanID,
		plan.Altitude,
		plan.Airspeed,
		plan.AircraftIdentification,
		plan.AircraftType,
		plan.ArrivalAirport,
		plan.DepartingAirport,
		plan.FlightType,
		plan.DepartureTime,
		plan.EstimatedArrivalTime,
		plan.Route,
		plan.Remarks,
		plan.FuelHours,
		plan.FuelMinutes,
		plan.NumberOnboard,
	)

	if err != nil {
		return false, fmt.Errorf("failed to update flight plan: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// DeleteFlightPlan removes the flight plan with the given id.
// Returns true iff a row was removed. Deletion is physical.
func (r *Repository) DeleteFlightPlan(ctx context.Context, id string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer r.pool.Release(conn)

	query := `DELETE FROM flight_plans WHERE flight_plan_id = $1`

	result, err := conn.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete flight plan: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// scanFlightPlan scans a row into a FlightPlan model.
func scanFlightPlan(row pgx.Row) (model.FlightPlan, error) {
	var plan model.FlightPlan
	err := row.Scan(
		&plan.FlightPlanID,
		&plan.Altitude,
		&plan.Airspeed,
		&plan.AircraftIdentification,
		&plan.AircraftType,
		&plan.ArrivalAirport,
		&plan.DepartingAirport,
		&plan.FlightType,
		&plan.DepartureTime,
		&plan.EstimatedArrivalTime,
		&plan.Route,
		&plan.Remarks,
		&plan.FuelHours,
		&plan.FuelMinutes,
		&plan.NumberOnboard,
	)
	return plan, err
}
