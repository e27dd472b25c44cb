package model

// Category is one entry in the controlled vocabulary of place categories
type Category struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	Icon        *string `db:"icon" json:"icon,omitempty"`
}

// PlaceCategory links a place to a category (many-to-many)
type PlaceCategory struct {
	PlaceID    string `db:"place_id" json:"place_id"`
	CategoryID string `db:"category_id" json:"category_id"`
}
