package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
)

// searchTitles maps each table with a search_vector column to the expression
// used as the hit title.
var searchTitles = map[string]string{
	"crm_products":       "name",
	"crm_contacts":       "full_name",
	"crm_leads":          "full_name",
	"crm_opportunities":  "name",
	"crm_quotes":         "quote_number",
	"crm_jobs":           "title",
	"crm_referrals":      "referred_name",
	"crm_communications": "coalesce(subject, '')",
	"crm_documents":      "name",
	"crm_notes":          "coalesce(title, '')",
	"tasks":              "title",
}

// CRMSearchTables are the tables SearchCRM fans out over
var CRMSearchTables = []string{
	"crm_contacts",
	"crm_leads",
	"crm_opportunities",
	"crm_quotes",
	"crm_jobs",
	"crm_products",
	"crm_referrals",
	"crm_notes",
}

// SearchHit is one full-text match
type SearchHit struct {
	Table string    `json:"table"`
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Rank  float64   `json:"rank"`
}

// Search ranks live rows of table against a web-style query
func (s *pgStore) Search(ctx context.Context, table, query string, limit int) ([]SearchHit, error) {
	title, ok := searchTitles[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not searchable", domain.ErrInvalidInput, table)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	var hits []SearchHit
	err := s.read(ctx, func(tx *gorm.DB) error {
		return Pagination{Limit: limit}.apply(live(tx.Table(table))).
			Select(fmt.Sprintf("id, %s AS title, ts_rank(search_vector, websearch_to_tsquery('english', ?)) AS rank", title), query).
			Where("search_vector @@ websearch_to_tsquery('english', ?)", query).
			Order("rank DESC, id").
			Scan(&hits).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", table, err)
	}
	for i := range hits {
		hits[i].Table = table
	}
	return hits, nil
}

// SearchCRM searches every CRM table and merges the hits by rank
func (s *pgStore) SearchCRM(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	var all []SearchHit
	for _, table := range CRMSearchTables {
		hits, err := s.Search(ctx, table, query, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, hits...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Rank > all[j].Rank
	})
	if limit <= 0 {
		limit = defaultPageSize
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
