package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Restaurant is a restaurant record as the backend serves it.
type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Disabled    bool    `json:"disabled"`
	CreatedAt   string  `json:"created_at"`
	Description string  `json:"description"`
	PostalCode  string  `json:"postal_code"`
	Webpage     string  `json:"webpage"`
	AvgRating   float64 `json:"avg_rating"`
}

// Review is a single restaurant review.
type Review struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	UserID       string `json:"user_id"`
	CreatedAt    string `json:"created_at"`
	Review       string `json:"review"`
	Rating       int    `json:"rating"`
}

// RestaurantList is a page of restaurants plus the total match count.
type RestaurantList struct {
	Data  []Restaurant `json:"data"`
	Count int          `json:"count"`
}

// RestaurantDetail is one restaurant with its review highlights.
type RestaurantDetail struct {
	Data        *Restaurant `json:"data"`
	ReviewCount int         `json:"review_count"`
	BestReview  *Review     `json:"best_review"`
	WorstReview *Review     `json:"worst_review"`
	LastReview  *Review     `json:"last_review"`
}

// ItemPage is a page of admin records of any model, left undecoded because
// each admin listing has its own column set.
type ItemPage struct {
	Data  []map[string]any `json:"data"`
	Count int              `json:"count"`
}

// RestaurantQuery filters and pages a restaurant listing. Country and
// Postcode select the cacheable per-region endpoint when both are set.
type RestaurantQuery struct {
	Country  string
	Postcode string
	Name     string
	Offset   int
	Limit    int
}

type reviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// LoadRestaurants fetches a page of restaurants matching q.
func (c *Client) LoadRestaurants(ctx context.Context, q RestaurantQuery) (RestaurantList, error) {
	return Call(ctx, c, func(ctx context.Context, accessToken string) (RestaurantList, error) {
		path := RouteRestaurants
		if q.Country != "" && q.Postcode != "" {
			path += "/" + url.PathEscape(q.Country) + "/" + url.PathEscape(q.Postcode)
		}

		params := url.Values{}
		params.Set("name", q.Name)
		params.Set("offset", strconv.Itoa(q.Offset))
		params.Set("limit", strconv.Itoa(q.Limit))

		var list RestaurantList
		err := c.getJSON(ctx, accessToken, path+"?"+params.Encode(), &list)
		return list, err
	})
}

// LoadRestaurant fetches a single restaurant with its review highlights.
func (c *Client) LoadRestaurant(ctx context.Context, restaurantID string) (RestaurantDetail, error) {
	return Call(ctx, c, func(ctx context.Context, accessToken string) (RestaurantDetail, error) {
		var detail RestaurantDetail
		err := c.getJSON(ctx, accessToken, RouteRestaurant+"/"+url.PathEscape(restaurantID), &detail)
		return detail, err
	})
}

// SendReview posts a review for a restaurant and returns the stored record.
func (c *Client) SendReview(ctx context.Context, restaurantID, review string, rating int) (Review, error) {
	return Call(ctx, c, func(ctx context.Context, accessToken string) (Review, error) {
		var created Review
		err := c.postJSON(ctx, accessToken, RouteReview+"/"+url.PathEscape(restaurantID), reviewRequest{Review: review, Rating: rating}, http.StatusCreated, &created)
		return created, err
	})
}

// LoadItems fetches a page of admin records from one of the listing
// endpoints (RouteUsers, RouteRestaurants, RouteReviews).
func (c *Client) LoadItems(ctx context.Context, endpoint string, offset, limit int) (ItemPage, error) {
	return Call(ctx, c, func(ctx context.Context, accessToken string) (ItemPage, error) {
		params := url.Values{}
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(limit))

		var page ItemPage
		err := c.getJSON(ctx, accessToken, endpoint+"?"+params.Encode(), &page)
		return page, err
	})
}
