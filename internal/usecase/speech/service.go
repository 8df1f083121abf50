// Package speech implements the committee-speech search behind the
// word-cloud drill-down: a date-bounded full-text search over speech bodies
// plus batched minutes/member enrichment.
package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/domain/search"
	"github.com/politylink/polisearch/internal/es"
)

const (
	fieldBody    = "body"
	fieldTitle   = "title"
	fieldDate    = "date"
	fieldSpeaker = "speaker"
)

const dateLayout = "2006-01-02"

var snippetFields = []string{fieldBody}

// Params are the caller-supplied search parameters. Start/End bound the
// speech date as a half-open range [Start, End).
type Params struct {
	Term         string
	Start        string
	End          string
	Committee    string
	NumItems     int
	FragmentSize int
}

func (p Params) validate() error {
	if p.Term == "" {
		return fmt.Errorf("%w: empty search term", domain.ErrInvalidQuery)
	}
	start, err := time.Parse(dateLayout, p.Start)
	if err != nil {
		return fmt.Errorf("%w: start %q", domain.ErrInvalidDateRange, p.Start)
	}
	end, err := time.Parse(dateLayout, p.End)
	if err != nil {
		return fmt.Errorf("%w: end %q", domain.ErrInvalidDateRange, p.End)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: [%s, %s)", domain.ErrInvalidDateRange, p.Start, p.End)
	}
	return nil
}

// Service runs speech searches.
type Service struct {
	index     SearchIndex
	data      DataService
	indexName string
}

// New creates a speech search service over the named index.
func New(index SearchIndex, data DataService, indexName string) *Service {
	return &Service{index: index, data: data, indexName: indexName}
}

// Search executes the pipeline. Unlike bills and members there is no page
// window; the word-cloud UI only consumes the top hits.
func (s *Service) Search(ctx context.Context, p Params) (Envelope, error) {
	if err := p.validate(); err != nil {
		return Envelope{}, err
	}
	numItems := p.NumItems
	if numItems <= 0 {
		numItems = 3
	}
	fragmentSize := p.FragmentSize
	if fragmentSize <= 0 {
		fragmentSize = search.DefaultFragmentSize
	}

	body := buildBody(p, numItems, fragmentSize)

	resp, err := s.index.Search(ctx, s.indexName, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("search speeches: %w", err)
	}

	infos, err := s.data.BulkSpeeches(ctx, resp.IDs())
	if err != nil {
		return Envelope{}, fmt.Errorf("fetch speech records: %w", err)
	}

	return fuse(ctx, resp, infos)
}

// buildBody builds a date-filtered relevance query over speech bodies, with
// an optional committee-name match and body highlighting. Bodies are heavy,
// so they are excluded from the source and read back only as highlights.
func buildBody(p Params, numItems, fragmentSize int) *es.Body {
	must := []es.Query{
		{MultiMatch: &es.MultiMatch{Query: p.Term, Fields: []string{fieldBody}}},
	}
	if p.Committee != "" {
		must = append(must, es.Query{Match: map[string]string{fieldTitle: p.Committee}})
	}

	body := &es.Body{
		Query: &es.Query{Bool: &es.BoolQuery{
			Must: must,
			Filter: []es.Query{
				{Range: map[string]es.Range{fieldDate: {GTE: p.Start, LT: p.End}}},
			},
		}},
		Source:    &es.Source{Excludes: []string{fieldBody}},
		Highlight: es.NewHighlight(snippetFields, fragmentSize),
	}
	return body.Window(0, numItems)
}
