package model

// FlightPlan represents a filed flight plan. FlightPlanID is assigned
// by the repository on insert and is stable across updates; any value a
// caller supplies on create is discarded.
//
// Departure and arrival times are caller-supplied textual timestamps,
// stored verbatim.
type FlightPlan struct {
	FlightPlanID           string `json:"flightPlanId"`
	Altitude               int    `json:"altitude"`
	Airspeed               int    `json:"airspeed"`
	AircraftIdentification string `json:"aircraftIdentification"`
	AircraftType           string `json:"aircraftType"`
	ArrivalAirport         string `json:"arrivalAirport"`
	DepartingAirport       string `json:"departingAirport"`
	FlightType             string `json:"flightType"`
	DepartureTime          string `json:"departureTime"`
	EstimatedArrivalTime   string `json:"estimatedArrivalTime"`
	Route                  string `json:"route"`
	Remarks                string `json:"remarks"`
	FuelHours              int    `json:"fuelHours"`
	FuelMinutes            int    `json:"fuelMinutes"`
	NumberOnboard          int    `json:"numberOnboard"`
}
