package seeder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fikaregister/fika-api/internal/model"
)

// SeedFile is the on-disk seed data format: a category vocabulary plus
// places, each optionally carrying its reviews.
type SeedFile struct {
	Categories []SeedCategory `json:"categories"`
	Places     []SeedPlace    `json:"places"`
}

type SeedCategory struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

type SeedPlace struct {
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	Address         *string           `json:"address,omitempty"`
	City            string            `json:"city"`
	Region          *string           `json:"region,omitempty"`
	Latitude        *float64          `json:"latitude,omitempty"`
	Longitude       *float64          `json:"longitude,omitempty"`
	Phone           *string           `json:"phone,omitempty"`
	Website         *string           `json:"website,omitempty"`
	OpeningHours    map[string]string `json:"opening_hours,omitempty"`
	FikaSpecialties []string          `json:"fika_specialties,omitempty"`
	PriceRange      *int              `json:"price_range,omitempty"`
	Verified        bool              `json:"verified,omitempty"`
	Features        []string          `json:"features,omitempty"`
	Images          []string          `json:"images,omitempty"`
	Categories      []string          `json:"categories,omitempty"`
	Reviews         []SeedReview      `json:"reviews,omitempty"`
}

type SeedReview struct {
	UserName  *string  `json:"user_name,omitempty"`
	Rating    int      `json:"rating"`
	Comment   *string  `json:"comment,omitempty"`
	FikaItems []string `json:"fika_items,omitempty"`
	VisitDate *string  `json:"visit_date,omitempty"`
	VisitTime *string  `json:"visit_time,omitempty"`
	Language  *string  `json:"language,omitempty"`
	Approved  bool     `json:"approved,omitempty"`
}

// Parser reads and validates a JSON seed file
type Parser struct {
	path string
}

// NewParser creates a new parser for the given seed file path
func NewParser(path string) *Parser {
	return &Parser{path: path}
}

// Parse reads the seed file and validates its entries
func (p *Parser) Parse() (*SeedFile, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*SeedFile, error) {
	var file SeedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, category := range file.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return nil, fmt.Errorf("category %d: name is required", i)
		}
	}

	for i, place := range file.Places {
		if strings.TrimSpace(place.Name) == "" {
			return nil, fmt.Errorf("place %d: name is required", i)
		}
		if strings.TrimSpace(place.City) == "" {
			return nil, fmt.Errorf("place %d (%s): city is required", i, place.Name)
		}
		if place.PriceRange != nil && (*place.PriceRange < 1 || *place.PriceRange > 4) {
			return nil, fmt.Errorf("place %d (%s): price_range must be between 1 and 4", i, place.Name)
		}
		if place.Latitude != nil && (*place.Latitude < -90 || *place.Latitude > 90) {
			return nil, fmt.Errorf("place %d (%s): latitude out of range", i, place.Name)
		}
		if place.Longitude != nil && (*place.Longitude < -180 || *place.Longitude > 180) {
			return nil, fmt.Errorf("place %d (%s): longitude out of range", i, place.Name)
		}
		for j, review := range place.Reviews {
			if review.Rating < 1 || review.Rating > 5 {
				return nil, fmt.Errorf("place %d (%s) review %d: rating must be between 1 and 5", i, place.Name, j)
			}
		}
	}

	return &file, nil
}

// PlaceCreate converts a seed entry to the service create payload
func (sp *SeedPlace) PlaceCreate() *model.PlaceCreate {
	return &model.PlaceCreate{
		Name:            sp.Name,
		Description:     sp.Description,
		Address:         sp.Address,
		City:            sp.City,
		Region:          sp.Region,
		Latitude:        sp.Latitude,
		Longitude:       sp.Longitude,
		Phone:           sp.Phone,
		Website:         sp.Website,
		OpeningHours:    sp.OpeningHours,
		FikaSpecialties: sp.FikaSpecialties,
		PriceRange:      sp.PriceRange,
		Features:        sp.Features,
		Images:          sp.Images,
		Categories:      sp.Categories,
	}
}
