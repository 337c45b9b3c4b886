package model

import "encoding/json"

// Perfume categories as the backend stores them
const (
	CategoryHim    = "Para Él"
	CategoryHer    = "Para Ella"
	CategoryUnisex = "Unisex"
)

// Categories lists the fixed catalog categories in display order
var Categories = []string{CategoryHer, CategoryHim, CategoryUnisex}

// IsValidCategory reports whether the value is one of the fixed categories
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Perfume is the catalog entity owned by the backend. This service holds a
// read-mostly cached copy and never assigns identifiers or defaults itself.
type Perfume struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Published   bool     `json:"published"`
	Notes       []string `json:"notes"`
	CreatedAt   string   `json:"createdAt"`
}

// UnmarshalJSON defaults the published flag to true when the backend omits
// it; older backend versions did not send the field at all.
func (p *Perfume) UnmarshalJSON(data []byte) error {
	type alias Perfume
	aux := struct {
		*alias
		Published *bool `json:"published"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Published == nil {
		p.Published = true
	} else {
		p.Published = *aux.Published
	}
	return nil
}

// PerfumeInput carries the admin-entered fields for a new perfume. The
// backend assigns the identifier and creation timestamp.
type PerfumeInput struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Published   bool     `json:"published"`
	Notes       []string `json:"notes"`
}
