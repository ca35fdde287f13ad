package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/travelbook/travelbook-backend/internal/models"
	"github.com/travelbook/travelbook-backend/internal/services"
)

// ListTravelOptions returns the travel catalog, optionally filtered by
// type, source, destination, departure date or a free-text search
func ListTravelOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		travelType := c.Query("type")
		source := c.Query("source")
		destination := c.Query("destination")
		date := c.Query("date")
		search := c.Query("search")

		filtered := travelType != "" || source != "" || destination != "" || date != "" || search != ""

		// Only the unfiltered listing is cached; filter combinations are
		// cheap enough to hit the database directly
		if !filtered {
			if cached, err := services.GetCachedTravelOptions(c.Request.Context()); err == nil && cached != nil {
				c.JSON(200, cached)
				return
			}
		}

		query := db.Model(&models.TravelOption{}).Order("departure_time ASC")
		if travelType != "" {
			query = query.Where("type = ?", travelType)
		}
		if source != "" {
			query = query.Where("LOWER(source) LIKE ?", "%"+strings.ToLower(source)+"%")
		}
		if destination != "" {
			query = query.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(destination)+"%")
		}
		if date != "" {
			query = query.Where("DATE(departure_time) = ?", date)
		}
		if search != "" {
			term := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(type) LIKE ? OR LOWER(source) LIKE ? OR LOWER(destination) LIKE ?", term, term, term)
		}

		var travels []models.TravelOption
		if err := query.Find(&travels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch travel options"})
			return
		}

		if !filtered {
			services.CacheTravelOptions(c.Request.Context(), travels)
		}

		c.JSON(200, travels)
	}
}

// GetTravelOption retrieves a single travel option
func GetTravelOption(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		travelId := c.Param("id")

		var travel models.TravelOption
		if err := db.First(&travel, travelId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Travel option not found"})
			return
		}

		c.JSON(200, travel)
	}
}
