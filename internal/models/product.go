// internal/models/product.go
package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string         `json:"name" gorm:"size:255;not null"`
	Category    string         `json:"category" gorm:"size:100;not null;index"`
	Price       float64        `json:"price" gorm:"type:numeric(12,2);not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Fabric      string         `json:"fabric" gorm:"size:100;index"`
	Work        string         `json:"work" gorm:"size:100;index"`
	Occasion    string         `json:"occasion" gorm:"size:100;index"`
	Fit         string         `json:"fit" gorm:"size:100;index"`
	ReadyMade   bool           `json:"readyMade" gorm:"not null;default:false"`
	Featured    bool           `json:"featured" gorm:"not null;default:false;index"`
	Sizes       pq.StringArray `json:"sizes" gorm:"type:text[];not null;default:'{}'"`
	Colors      pq.StringArray `json:"colors" gorm:"type:text[];not null;default:'{}'"`
	CustomNote  string         `json:"customNote" gorm:"type:text"`
	Images      pq.StringArray `json:"images" gorm:"type:text[];not null;default:'{}'"`
}

// ProductSummary is the projection returned by the search endpoint.
type ProductSummary struct {
	ID     uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Price  float64        `json:"price"`
	Images pq.StringArray `json:"images" gorm:"type:text[]"`
}

// Normalize trims the text fields and turns sizes and colors into
// duplicate-free sets. Array columns are never nil afterwards.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	p.Fabric = strings.TrimSpace(p.Fabric)
	p.Work = strings.TrimSpace(p.Work)
	p.Occasion = strings.TrimSpace(p.Occasion)
	p.Fit = strings.TrimSpace(p.Fit)
	p.Sizes = uniqueStrings(p.Sizes)
	p.Colors = uniqueStrings(p.Colors)
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Images: p.Images,
	}
}

func uniqueStrings(values []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
