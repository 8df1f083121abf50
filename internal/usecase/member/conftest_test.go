package member

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
)

type fakeIndex struct {
	lastIndex string
	lastBody  *es.Body
	resp      *es.Response
	err       error
}

func (f *fakeIndex) Search(_ context.Context, index string, body *es.Body) (*es.Response, error) {
	f.lastIndex = index
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeData struct {
	lastIDs []string
	members map[string]graphql.Member
	err     error
}

func (f *fakeData) BulkMembers(_ context.Context, ids []string) (map[string]graphql.Member, error) {
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]graphql.Member, len(ids))
	for _, id := range ids {
		if m, ok := f.members[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func hit(t *testing.T, id string, src any, highlight map[string][]string) es.Hit {
	t.Helper()
	raw, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal source: %v", err)
	}
	return es.Hit{ID: id, Source: raw, Highlight: highlight}
}

func respOf(total int, hits ...es.Hit) *es.Response {
	return &es.Response{Hits: es.Hits{
		Total: es.Total{Value: total, Relation: "eq"},
		Hits:  hits,
	}}
}
