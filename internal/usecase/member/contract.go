package member

import (
	"context"

	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
)

// SearchIndex executes one read-only query against the member text index.
type SearchIndex interface {
	Search(ctx context.Context, index string, body *es.Body) (*es.Response, error)
}

// DataService performs the batched member lookup for enrichment.
type DataService interface {
	BulkMembers(ctx context.Context, ids []string) (map[string]graphql.Member, error)
}
