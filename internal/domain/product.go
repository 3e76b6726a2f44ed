package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Featured    bool      `json:"featured"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	Features    []string  `json:"features,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
