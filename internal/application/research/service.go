package research

import (
	"context"

	"famfolio-backend/internal/domain"

	"gorm.io/gorm"
)

// Service serves the read-only research reference list.
type Service struct {
	DB *gorm.DB
}

// Idea is one research entry as presented to clients.
type Idea struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
}

// ListIdeas returns the idea catalogue grouped by category.
func (s *Service) ListIdeas(ctx context.Context) (map[string][]Idea, error) {
	var rows []domain.StockIdea
	if err := s.DB.WithContext(ctx).Order("category ASC, idea_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string][]Idea)
	for _, row := range rows {
		out[row.Category] = append(out[row.Category], Idea{
			Ticker: row.Ticker,
			Name:   row.Name,
			Desc:   row.Description,
		})
	}
	return out, nil
}
