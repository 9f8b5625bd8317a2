package api

// Backend routes, relative to the configured base URL (e.g. ".../api/v1").
const (
	RouteLogin       = "/login"
	RouteSignup      = "/signup"
	RouteRefresh     = "/refresh"
	RouteRestaurants = "/restaurants"
	RouteRestaurant  = "/restaurant"
	RouteReview      = "/review"

	// Admin listing endpoints consumed through LoadItems.
	RouteUsers   = "/users"
	RouteReviews = "/reviews"
)

const (
	contentTypeJSON = "application/json"
	headerRequestID = "X-Request-Id"
)
