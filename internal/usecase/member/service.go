// Package member implements the member search pipeline.
package member

import (
	"context"
	"fmt"

	"github.com/politylink/polisearch/internal/domain/search"
	"github.com/politylink/polisearch/internal/es"
)

const (
	fieldName            = "name"
	fieldNameHira        = "name_hira"
	fieldDescription     = "description"
	fieldGroup           = "group"
	fieldHouse           = "house"
	fieldLastUpdatedDate = "last_updated_date"
)

// snippetFields is the highlight priority order for members.
var snippetFields = []string{fieldDescription}

// Params are the caller-supplied search parameters. Groups and houses carry
// the index's numeric facet codes; empty slices impose no constraint.
type Params struct {
	Query        string
	Groups       []string
	Houses       []string
	Page         int
	NumItems     int
	FragmentSize int
}

// Service runs member searches.
type Service struct {
	index     SearchIndex
	data      DataService
	indexName string
}

// New creates a member search service over the named index.
func New(index SearchIndex, data DataService, indexName string) *Service {
	return &Service{index: index, data: data, indexName: indexName}
}

// Search executes the pipeline: build query, search, batched enrichment, fuse.
func (s *Service) Search(ctx context.Context, p Params) (Envelope, error) {
	page, err := search.NewPage(p.Page, p.NumItems)
	if err != nil {
		return Envelope{}, err
	}
	fragmentSize := p.FragmentSize
	if fragmentSize <= 0 {
		fragmentSize = search.DefaultFragmentSize
	}

	body := buildBody(p, page, fragmentSize)

	resp, err := s.index.Search(ctx, s.indexName, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("search members: %w", err)
	}

	infos, err := s.data.BulkMembers(ctx, resp.IDs())
	if err != nil {
		return Envelope{}, fmt.Errorf("fetch member records: %w", err)
	}

	return fuse(ctx, resp, infos, fragmentSize)
}

// buildBody translates the parameters into one index request: a weighted
// name/description relevance query with highlighting, or a recency-sorted
// browse when no text is given. Facets are ANDed in as terms filters.
func buildBody(p Params, page search.Page, fragmentSize int) *es.Body {
	body := &es.Body{}

	var query *es.Query
	if p.Query == "" {
		body.Sort = []map[string]es.Sort{es.SortDesc(fieldLastUpdatedDate)}
	} else {
		fields := []string{fieldName + "^100", fieldNameHira + "^100", fieldDescription + "^10"}
		query = &es.Query{MultiMatch: &es.MultiMatch{Query: p.Query, Fields: fields}}
		body.Highlight = es.NewHighlight(snippetFields, fragmentSize)
	}

	var filters []es.Query
	if len(p.Groups) > 0 {
		filters = append(filters, es.Query{Terms: map[string][]string{fieldGroup: p.Groups}})
	}
	if len(p.Houses) > 0 {
		filters = append(filters, es.Query{Terms: map[string][]string{fieldHouse: p.Houses}})
	}

	switch {
	case len(filters) == 0:
		body.Query = query
	case query == nil:
		body.Query = &es.Query{Bool: &es.BoolQuery{Filter: filters}}
	default:
		body.Query = &es.Query{Bool: &es.BoolQuery{Must: []es.Query{*query}, Filter: filters}}
	}

	return body.Window(page.From(), page.Size())
}
