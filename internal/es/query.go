// Package es is a minimal typed client for the search index. It models only
// the slice of the query DSL this service sends: multi_match with field
// weights, function_score with Gaussian recency decay, term filters,
// highlighting and a result window.
package es

// Body is the top-level search request body.
type Body struct {
	Query     *Query            `json:"query,omitempty"`
	Sort      []map[string]Sort `json:"sort,omitempty"`
	From      *int              `json:"from,omitempty"`
	Size      *int              `json:"size,omitempty"`
	Source    *Source           `json:"_source,omitempty"`
	Highlight *Highlight        `json:"highlight,omitempty"`
}

// Sort is a single sort clause value.
type Sort struct {
	Order string `json:"order"`
}

// SortDesc builds a descending sort clause on field.
func SortDesc(field string) map[string]Sort {
	return map[string]Sort{field: {Order: "desc"}}
}

// Source controls which indexed fields are returned with each hit.
type Source struct {
	Excludes []string `json:"excludes,omitempty"`
}

// Query is a single query clause. Exactly one member should be set.
type Query struct {
	Bool          *BoolQuery          `json:"bool,omitempty"`
	MultiMatch    *MultiMatch         `json:"multi_match,omitempty"`
	MatchPhrase   map[string]string   `json:"match_phrase,omitempty"`
	Match         map[string]string   `json:"match,omitempty"`
	Terms         map[string][]string `json:"terms,omitempty"`
	Range         map[string]Range    `json:"range,omitempty"`
	FunctionScore *FunctionScore      `json:"function_score,omitempty"`
}

// BoolQuery combines scoring clauses (must) with non-scoring filters.
type BoolQuery struct {
	Must   []Query `json:"must,omitempty"`
	Filter []Query `json:"filter,omitempty"`
}

// MultiMatch scores a free-text query over weighted fields ("title^100").
type MultiMatch struct {
	Query  string   `json:"query"`
	Fields []string `json:"fields"`
}

// FunctionScore wraps a query with rescoring functions.
type FunctionScore struct {
	Query     *Query          `json:"query"`
	Functions []ScoreFunction `json:"functions"`
}

// ScoreFunction is a single rescoring function.
type ScoreFunction struct {
	Gauss map[string]Gauss `json:"gauss,omitempty"`
}

// Gauss is a Gaussian decay over a date field; Scale is an index duration
// expression such as "180d".
type Gauss struct {
	Scale string  `json:"scale"`
	Decay float64 `json:"decay"`
}

// Range bounds a date field; the range is half-open [GTE, LT).
type Range struct {
	GTE string `json:"gte,omitempty"`
	LT  string `json:"lt,omitempty"`
}

// Highlight requests match-marked fragments alongside each hit.
type Highlight struct {
	Fields            map[string]HighlightField `json:"fields"`
	FragmentSize      int                       `json:"fragment_size,omitempty"`
	NumberOfFragments int                       `json:"number_of_fragments,omitempty"`
	BoundaryChars     string                    `json:"boundary_chars,omitempty"`
	PreTags           []string                  `json:"pre_tags,omitempty"`
	PostTags          []string                  `json:"post_tags,omitempty"`
}

// HighlightField has no per-field options; the top-level settings apply.
type HighlightField struct{}

// NewHighlight builds a highlight spec requesting one fragment per field.
func NewHighlight(fields []string, fragmentSize int) *Highlight {
	m := make(map[string]HighlightField, len(fields))
	for _, f := range fields {
		m[f] = HighlightField{}
	}
	return &Highlight{
		Fields:            m,
		FragmentSize:      fragmentSize,
		NumberOfFragments: 1,
		BoundaryChars:     ".,!? \t\n、。",
		PreTags:           []string{"<b>"},
		PostTags:          []string{"</b>"},
	}
}

// Window applies a zero-based offset and size to the body.
func (b *Body) Window(from, size int) *Body {
	b.From = &from
	b.Size = &size
	return b
}
