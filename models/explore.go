package models

import "github.com/google/uuid"

// ShipSummary is a brief ship record for listing views
type ShipSummary struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Type           string    `json:"type,omitempty" db:"type"`
	YearBuilt      int       `json:"year_built,omitempty" db:"year_built"`
	PortOfRegistry string    `json:"port_of_registry,omitempty" db:"port_of_registry"`
}

// TableName returns the table name for the ShipSummary model
func (ShipSummary) TableName() string {
	return "ships"
}

// ShipFilter narrows ship listings
type ShipFilter struct {
	Search  string `validate:"max=200"`
	YearMin int    `validate:"gte=0"`
	YearMax int    `validate:"gte=0"`
	Limit   int    `validate:"gte=1,lte=200"`
	Offset  int    `validate:"gte=0"`
}

// VoyageSummary is a brief voyage record
type VoyageSummary struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ShipName      string    `json:"ship_name" db:"ship_name"`
	DeparturePort string    `json:"departure_port,omitempty" db:"departure_port"`
	ArrivalPort   string    `json:"arrival_port,omitempty" db:"arrival_port"`
	DepartureDate string    `json:"departure_date,omitempty" db:"departure_date"`
	ArrivalDate   string    `json:"arrival_date,omitempty" db:"arrival_date"`
}

// TableName returns the table name for the VoyageSummary model
func (VoyageSummary) TableName() string {
	return "voyages"
}

// VoyageFilter narrows voyage listings
type VoyageFilter struct {
	ShipName string `validate:"max=200"`
	Port     string `validate:"max=200"`
	DateFrom string `validate:"max=10"`
	DateTo   string `validate:"max=10"`
	Limit    int    `validate:"gte=1,lte=200"`
	Offset   int    `validate:"gte=0"`
}
