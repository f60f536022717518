package routes

import (
	"net/http"

	"github.com/anumeetkumar/restaurants-booking/analytics"
	"github.com/anumeetkumar/restaurants-booking/bookings"
	"github.com/anumeetkumar/restaurants-booking/categories"
	"github.com/anumeetkumar/restaurants-booking/live"
	"github.com/anumeetkumar/restaurants-booking/organizations"
	"github.com/anumeetkumar/restaurants-booking/qr"
	"github.com/anumeetkumar/restaurants-booking/ratelim"
	"github.com/anumeetkumar/restaurants-booking/settings"

	"github.com/julienschmidt/httprouter"
)

func AddCategoryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *categories.API) {
	router.GET("/api/categories", api.GetCategories)
	router.GET("/api/categories/:id", api.GetCategory)
	router.POST("/api/categories", rl.Limit(api.CreateCategory))
	router.PUT("/api/categories/:id", rl.Limit(api.EditCategory))
	router.DELETE("/api/categories/:id", rl.Limit(api.DeleteCategory))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *bookings.API) {
	router.GET("/api/bookings", api.GetBookings)
	router.GET("/api/bookings/:id", api.GetBooking)
	router.POST("/api/bookings", rl.Limit(api.CreateBooking))
	router.PUT("/api/bookings/:id", rl.Limit(api.EditBooking))
	router.POST("/api/bookings/:id/checkin", rl.Limit(api.CheckInBooking))
	router.DELETE("/api/bookings/:id", rl.Limit(api.DeleteBooking))
}

func AddSettingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *settings.API) {
	router.GET("/api/settings", api.GetSettings)
	router.PUT("/api/settings", rl.Limit(api.UpdateSettings))
	router.POST("/api/settings/logo", rl.Limit(api.UploadLogo))
}

func AddOrganizationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *organizations.API) {
	router.GET("/api/organizations", api.GetOrganizations)
	router.GET("/api/organizations/:id", api.GetOrganization)
	router.POST("/api/organizations", rl.Limit(api.CreateOrganization))
	router.PUT("/api/organizations/:id", rl.Limit(api.EditOrganization))
	router.DELETE("/api/organizations/:id", rl.Limit(api.DeleteOrganization))
}

func AddAnalyticsRoutes(router *httprouter.Router, api *analytics.API) {
	router.GET("/api/analytics/summary", api.GetSummary)
	router.GET("/api/analytics/trend", api.GetTrend)
	router.GET("/api/analytics/categories", api.GetCategoryPerformance)
	router.GET("/api/analytics/recent", api.GetRecent)
}

func AddQRRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *qr.API) {
	router.GET("/api/qr/booking/:id", api.BookingQR)
	router.GET("/api/qr/category/:id", api.CategoryQR)
	router.POST("/api/qr/scan", rl.Limit(api.Scan))
	router.POST("/api/qr/print", rl.Limit(api.PrintSheet))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/ws/:topic", live.HandleWS)
}

func AddStaticRoutes(router *httprouter.Router, staticDir string) {
	router.ServeFiles("/static/logopic/*filepath", http.Dir(staticDir+"/logopic"))
}
