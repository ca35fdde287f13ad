package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/travelbook/travelbook-backend/internal/models"
)

// seedCatalog inserts three travel options with distinct types, routes
// and departure days
func seedCatalog(t *testing.T, db *gorm.DB) (flight, train, bus models.TravelOption) {
	t.Helper()

	base := time.Date(time.Now().Year()+1, 3, 15, 12, 0, 0, 0, time.UTC)

	flight = models.TravelOption{
		Type:           models.TravelTypeFlight,
		Source:         "Mumbai",
		Destination:    "Delhi",
		DepartureTime:  base,
		Price:          5000,
		TotalSeats:     50,
		AvailableSeats: 50,
	}
	train = models.TravelOption{
		Type:           models.TravelTypeTrain,
		Source:         "Bangalore",
		Destination:    "Chennai",
		DepartureTime:  base.Add(24 * time.Hour),
		Price:          800,
		TotalSeats:     100,
		AvailableSeats: 100,
	}
	bus = models.TravelOption{
		Type:           models.TravelTypeBus,
		Source:         "Pune",
		Destination:    "Mumbai",
		DepartureTime:  base.Add(48 * time.Hour),
		Price:          300,
		TotalSeats:     30,
		AvailableSeats: 30,
	}

	require.NoError(t, db.Create(&flight).Error)
	require.NoError(t, db.Create(&train).Error)
	require.NoError(t, db.Create(&bus).Error)
	return flight, train, bus
}

func listTravels(t *testing.T, r *gin.Engine, query string) []models.TravelOption {
	t.Helper()

	w := performRequest(t, r, "GET", "/api/travels"+query, nil, "")
	require.Equal(t, 200, w.Code, w.Body.String())

	var travels []models.TravelOption
	decodeBody(t, w, &travels)
	return travels
}

func TestListTravelOptionsOrderedByDeparture(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	flight, train, bus := seedCatalog(t, db)

	travels := listTravels(t, r, "")
	require.Len(t, travels, 3)
	assert.Equal(t, flight.ID, travels[0].ID)
	assert.Equal(t, train.ID, travels[1].ID)
	assert.Equal(t, bus.ID, travels[2].ID)
}

func TestListTravelOptionsFilterByType(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	flight, _, _ := seedCatalog(t, db)

	travels := listTravels(t, r, "?type=Flight")
	require.Len(t, travels, 1)
	assert.Equal(t, flight.ID, travels[0].ID)
}

func TestListTravelOptionsFilterBySourceCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	flight, _, _ := seedCatalog(t, db)

	travels := listTravels(t, r, "?source=mumBAI")
	require.Len(t, travels, 1)
	assert.Equal(t, flight.ID, travels[0].ID)
}

func TestListTravelOptionsFilterByDestination(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, _, bus := seedCatalog(t, db)

	// Substring match: "mumb" hits destination Mumbai only
	travels := listTravels(t, r, "?destination=mumb")
	require.Len(t, travels, 1)
	assert.Equal(t, bus.ID, travels[0].ID)
}

func TestListTravelOptionsFilterByDate(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	_, train, _ := seedCatalog(t, db)

	travels := listTravels(t, r, "?date="+train.DepartureTime.Format("2006-01-02"))
	require.Len(t, travels, 1)
	assert.Equal(t, train.ID, travels[0].ID)
}

func TestListTravelOptionsSearchAcrossFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	flight, train, bus := seedCatalog(t, db)

	// Destination match, case-insensitive
	travels := listTravels(t, r, "?search=DELHI")
	require.Len(t, travels, 1)
	assert.Equal(t, flight.ID, travels[0].ID)

	// Type match
	travels = listTravels(t, r, "?search=train")
	require.Len(t, travels, 1)
	assert.Equal(t, train.ID, travels[0].ID)

	// Matches Mumbai as both source and destination, ordered by departure
	travels = listTravels(t, r, "?search=mumbai")
	require.Len(t, travels, 2)
	assert.Equal(t, flight.ID, travels[0].ID)
	assert.Equal(t, bus.ID, travels[1].ID)
}

func TestListTravelOptionsCombinedFilters(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedCatalog(t, db)

	travels := listTravels(t, r, "?type=Flight&source=pune")
	assert.Len(t, travels, 0)
}

func TestGetTravelOption(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	flight, _, _ := seedCatalog(t, db)

	w := performRequest(t, r, "GET", fmt.Sprintf("/api/travels/%d", flight.ID), nil, "")
	require.Equal(t, 200, w.Code)

	var travel models.TravelOption
	decodeBody(t, w, &travel)
	assert.Equal(t, flight.ID, travel.ID)
	assert.Equal(t, "Delhi", travel.Destination)
	assert.Equal(t, 50, travel.AvailableSeats)
}

func TestGetTravelOptionNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := performRequest(t, r, "GET", "/api/travels/999", nil, "")
	assert.Equal(t, 404, w.Code)
}
