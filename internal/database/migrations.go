package database

import (
	"gorm.io/gorm"
)

// RunMigrations adds the constraints AutoMigrate does not manage. The
// available_seats check is the database-side backstop for the seat
// inventory invariant; handlers never rely on it, but a bug can't
// drive the counter negative either.
func RunMigrations(db *gorm.DB) error {
	constraints := []struct {
		drop string
		add  string
	}{
		{
			drop: `ALTER TABLE travel_options DROP CONSTRAINT IF EXISTS travel_options_available_seats_check`,
			add:  `ALTER TABLE travel_options ADD CONSTRAINT travel_options_available_seats_check CHECK (available_seats >= 0 AND available_seats <= total_seats)`,
		},
		{
			drop: `ALTER TABLE travel_options DROP CONSTRAINT IF EXISTS travel_options_type_check`,
			add:  `ALTER TABLE travel_options ADD CONSTRAINT travel_options_type_check CHECK (type IN ('Flight', 'Train', 'Bus'))`,
		},
		{
			drop: `ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`,
			add:  `ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('Confirmed', 'Cancelled'))`,
		},
	}

	for _, constraint := range constraints {
		if err := db.Exec(constraint.drop).Error; err != nil {
			return err
		}
		if err := db.Exec(constraint.add).Error; err != nil {
			return err
		}
	}

	return nil
}
