package models

import (
	"time"

	"gorm.io/gorm"
)

type TravelType string

const (
	TravelTypeFlight TravelType = "Flight"
	TravelTypeTrain  TravelType = "Train"
	TravelTypeBus    TravelType = "Bus"
)

type TravelOption struct {
	gorm.Model
	Type           TravelType `json:"type" gorm:"column:type;not null"`
	Source         string     `json:"source" gorm:"column:source;not null"`
	Destination    string     `json:"destination" gorm:"column:destination;not null"`
	DepartureTime  time.Time  `json:"departureTime" gorm:"column:departure_time;not null"`
	Price          float64    `json:"price" gorm:"column:price;not null"`
	TotalSeats     int        `json:"totalSeats" gorm:"column:total_seats;not null"`
	AvailableSeats int        `json:"availableSeats" gorm:"column:available_seats;not null"`
}

// TableName specifies the table name
func (TravelOption) TableName() string {
	return "travel_options"
}
