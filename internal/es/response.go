package es

import "encoding/json"

// Response is the slice of the index search response this service reads.
type Response struct {
	Took     int  `json:"took"`
	TimedOut bool `json:"timed_out"`
	Hits     Hits `json:"hits"`
}

// Hits carries the total match count and the windowed hit page.
type Hits struct {
	Total Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total is the full match count, independent of the requested window.
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// Hit is a single matched document. Source is left raw so each entity
// pipeline can decode it into its own typed view.
type Hit struct {
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Source    json.RawMessage     `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// IDs returns the hit identifiers in result order.
func (r *Response) IDs() []string {
	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids
}
