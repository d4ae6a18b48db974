package dto

import "time"

// SendReviewDTO /send-review/ 请求体，rating 用指针区分缺失与 0
type SendReviewDTO struct {
	Slug   string   `json:"slug"`
	Rating *float64 `json:"rating"`
}

type ReviewResultDTO struct {
	Status        string  `json:"status"`
	Rating        float64 `json:"rating"`
	Updated       bool    `json:"updated"`
	AverageRating float64 `json:"average_rating"`
}

type ReviewDTO struct {
	Username  string    `json:"user"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
