package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	gorm.Model
	UserID      uint          `json:"userId" gorm:"not null"`
	User        User          `json:"-"`
	TravelID    uint          `json:"travelId" gorm:"not null"`
	Travel      TravelOption  `json:"travel"`
	Seats       int           `json:"seats" gorm:"column:number_of_seats;not null"`
	TotalPrice  float64       `json:"totalPrice" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"not null;default:'Confirmed'"`
	BookingDate time.Time     `json:"bookingDate" gorm:"not null"`
}
