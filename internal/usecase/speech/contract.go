package speech

import (
	"context"

	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
)

// SearchIndex executes one read-only query against the speech text index.
type SearchIndex interface {
	Search(ctx context.Context, index string, body *es.Body) (*es.Response, error)
}

// DataService performs the batched speech lookup for enrichment.
type DataService interface {
	BulkSpeeches(ctx context.Context, ids []string) (map[string]graphql.Speech, error)
}
