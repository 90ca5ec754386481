package api

import (
	"math"
	"time"

	"foolivery/internal/models"
)

// Currency projects canonical minor units into display major units
type Currency struct {
	Code string
	Rate float64
}

// Major converts minor units to rounded major units in the display currency
func (c Currency) Major(minor int64) float64 {
	rate := c.Rate
	if rate <= 0 {
		rate = 1
	}
	return math.Round(float64(minor)/100*rate*100) / 100
}

type foodResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Category    string  `json:"category"`
}

type orderItemResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type orderResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"userId"`
	Items         []orderItemResponse `json:"items"`
	Total         float64             `json:"total"`
	Currency      string              `json:"currency"`
	Status        models.OrderStatus  `json:"status"`
	PaymentMethod string              `json:"paymentMethod"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func (c Currency) food(f *models.Food) foodResponse {
	return foodResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Price:       c.Major(f.PriceMinor),
		Image:       f.Image,
		Rating:      float64(f.RatingTenths) / 10,
		Reviews:     f.Reviews,
		Category:    f.Category,
	}
}

func (c Currency) foods(foods []models.Food) []foodResponse {
	out := make([]foodResponse, 0, len(foods))
	for i := range foods {
		out = append(out, c.food(&foods[i]))
	}
	return out
}

func (c Currency) order(o *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    c.Major(item.PriceMinor),
			Quantity: item.Quantity,
		})
	}

	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		Total:         c.Major(o.TotalMinor),
		Currency:      c.Code,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Address:       o.Address,
		Phone:         o.Phone,
		CreatedAt:     o.CreatedAt,
	}
}

func (c Currency) orders(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, c.order(&orders[i]))
	}
	return out
}
