// Package bill implements the bill search pipeline: query construction,
// index search, batched enrichment, and result fusion.
package bill

import (
	"context"
	"fmt"

	"github.com/politylink/polisearch/internal/domain/search"
)

// Index field names, internal to the search index; never leaked into output.
const (
	fieldTitle           = "title"
	fieldTags            = "tags"
	fieldAliases         = "aliases"
	fieldBillNumber      = "bill_number"
	fieldReason          = "reason"
	fieldBody            = "body"
	fieldSupplement      = "supplement"
	fieldCategory        = "category"
	fieldStatus          = "status"
	fieldSubmittedDate   = "submitted_date"
	fieldLastUpdatedDate = "last_updated_date"
	fieldSubmittedDiet   = "submitted_diet"
	fieldBelongedToDiets = "belonged_to_diets"
	fieldSubmittedGroups = "submitted_groups"
	fieldSupportedGroups = "supported_groups"
	fieldOpposedGroups   = "opposed_groups"
)

// Decay configures the Gaussian recency rescoring of relevance queries.
type Decay struct {
	Scale  string
	Weight float64
}

// DefaultDecay halves little: equally relevant items half a year apart keep
// 80% of their score.
var DefaultDecay = Decay{Scale: "180d", Weight: 0.8}

// Params are the caller-supplied search parameters. Empty facet slices
// impose no constraint.
type Params struct {
	Query           string
	Categories      []string
	Statuses        []string
	BelongedToDiets []string
	SubmittedDiets  []string
	SubmittedGroups []string
	SupportedGroups []string
	OpposedGroups   []string
	FullText        bool
	Page            int
	NumItems        int
	FragmentSize    int
}

// Service runs bill searches. Safe for concurrent use; the two backing
// clients are the only state.
type Service struct {
	index     SearchIndex
	data      DataService
	indexName string
	decay     Decay
}

// New creates a bill search service over the named index.
func New(index SearchIndex, data DataService, indexName string) *Service {
	return &Service{index: index, data: data, indexName: indexName, decay: DefaultDecay}
}

// WithDecay overrides the recency-decay settings.
func (s *Service) WithDecay(d Decay) *Service {
	if d.Scale != "" && d.Weight > 0 {
		s.decay = d
	}
	return s
}

// Search executes the full pipeline: build query, search the index, fetch
// enrichment records for the hit IDs in one batch, and fuse.
func (s *Service) Search(ctx context.Context, p Params) (Envelope, error) {
	page, err := search.NewPage(p.Page, p.NumItems)
	if err != nil {
		return Envelope{}, err
	}
	fragmentSize := p.FragmentSize
	if fragmentSize <= 0 {
		fragmentSize = search.DefaultFragmentSize
	}

	body := s.buildBody(p, page, fragmentSize)

	resp, err := s.index.Search(ctx, s.indexName, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("search bills: %w", err)
	}

	infos, err := s.data.BulkBills(ctx, resp.IDs())
	if err != nil {
		return Envelope{}, fmt.Errorf("fetch bill records: %w", err)
	}

	return fuse(ctx, resp, infos, fragmentSize)
}
