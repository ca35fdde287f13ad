package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/travelbook/travelbook-backend/internal/models"
	"github.com/travelbook/travelbook-backend/internal/services"
)

// A single booking may reserve at most this many seats
const maxSeatsPerBooking = 10

var errSeatsTaken = errors.New("seats no longer available")

// CreateBooking reserves seats on a travel option for the current user
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			TravelID uint `json:"travelId" binding:"required"`
			Seats    int  `json:"seats"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var travel models.TravelOption
		if err := db.First(&travel, input.TravelID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Travel option not found"})
			return
		}

		if !travel.DepartureTime.After(time.Now()) {
			c.JSON(400, gin.H{"error": "This travel option has already departed"})
			return
		}
		if input.Seats < 1 {
			c.JSON(400, gin.H{"error": "Please enter a valid number of seats"})
			return
		}
		if input.Seats > maxSeatsPerBooking {
			c.JSON(400, gin.H{"error": fmt.Sprintf("A single booking is limited to %d seats", maxSeatsPerBooking)})
			return
		}
		if input.Seats > travel.AvailableSeats {
			c.JSON(400, gin.H{"error": "Not enough seats available"})
			return
		}

		booking := models.Booking{
			UserID:      userId,
			TravelID:    travel.ID,
			Seats:       input.Seats,
			TotalPrice:  float64(input.Seats) * travel.Price,
			Status:      models.BookingStatusConfirmed,
			BookingDate: time.Now(),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// The seat decrement is a single conditional UPDATE guarded by
			// available_seats >= seats, so two concurrent bookings cannot
			// both take the last seats
			result := tx.Model(&models.TravelOption{}).
				Where("id = ? AND available_seats >= ?", travel.ID, input.Seats).
				UpdateColumn("available_seats", gorm.Expr("available_seats - ?", input.Seats))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errSeatsTaken
			}
			return tx.Create(&booking).Error
		})
		if errors.Is(err, errSeatsTaken) {
			c.JSON(400, gin.H{"error": "Seats are no longer available"})
			return
		}
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		services.InvalidateTravelOptions(c.Request.Context())
		broadcastSeatAvailability(db, hub, travel.ID)

		booking.Travel = travel
		booking.Travel.AvailableSeats -= input.Seats
		c.JSON(201, booking)
	}
}

// GetMyBookings retrieves the current user's bookings, newest first,
// split into current (Confirmed) and past (everything else)
func GetMyBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("user_id = ?", userId).
			Preload("Travel").
			Order("booking_date DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		current := make([]models.Booking, 0)
		past := make([]models.Booking, 0)
		for _, booking := range bookings {
			if booking.Status == models.BookingStatusConfirmed {
				current = append(current, booking)
			} else {
				past = append(past, booking)
			}
		}

		c.JSON(200, gin.H{
			"current": current,
			"past":    past,
		})
	}
}

// CancelBooking cancels one of the current user's bookings and restores
// the booked seats to the travel option. Cancelling an already cancelled
// booking is a no-op.
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Travel").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		cancelled := false
		err := db.Transaction(func(tx *gorm.DB) error {
			// The status guard makes cancellation idempotent: only the call
			// that actually flips Confirmed -> Cancelled restores seats
			result := tx.Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
				Update("status", models.BookingStatusCancelled)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return nil
			}
			cancelled = true
			return tx.Model(&models.TravelOption{}).
				Where("id = ?", booking.TravelID).
				UpdateColumn("available_seats", gorm.Expr("available_seats + ?", booking.Seats)).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		if cancelled {
			services.InvalidateTravelOptions(c.Request.Context())
			broadcastSeatAvailability(db, hub, booking.TravelID)
		}

		// Reload to return the actual saved state
		if err := db.Preload("Travel").First(&booking, booking.ID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to reload booking"})
			return
		}

		c.JSON(200, booking)
	}
}

// broadcastSeatAvailability pushes the travel option's current seat count
// to connected WebSocket clients
func broadcastSeatAvailability(db *gorm.DB, hub *services.Hub, travelID uint) {
	if hub == nil {
		return
	}

	var travel models.TravelOption
	if err := db.First(&travel, travelID).Error; err != nil {
		return
	}

	hub.BroadcastSeatAvailability(travel.ID, travel.AvailableSeats)
}
