package presentation

import (
	"github.com/zjrosen/tagsearch/internal/searches/domain"
	"github.com/zjrosen/tagsearch/internal/searchurl"
)

// SearchDTO represents a saved search for presentation
type SearchDTO struct {
	Tag   string `json:"tag"`
	Query string `json:"query"`
	URL   string `json:"url"`
}

// FromDomainSearch converts a saved search to a DTO with its results URL
// composed from prefix.
func FromDomainSearch(s domain.SavedSearch, prefix string) SearchDTO {
	return SearchDTO{
		Tag:   s.Tag,
		Query: s.Query,
		URL:   searchurl.Compose(prefix, s.Query),
	}
}

// FromDomainSearches converts searches in index order.
func FromDomainSearches(searches []domain.SavedSearch, prefix string) []SearchDTO {
	dtos := make([]SearchDTO, len(searches))
	for i, s := range searches {
		dtos[i] = FromDomainSearch(s, prefix)
	}
	return dtos
}
