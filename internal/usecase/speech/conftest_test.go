package speech

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
	lastIDs  []string
	speeches map[string]graphql.Speech
	err      error
}

func (f *fakeData) BulkSpeeches(_ context.Context, ids []string) (map[string]graphql.Speech, error) {
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]graphql.Speech, len(ids))
	for _, id := range ids {
		if s, ok := f.speeches[id]; ok {
			out[id] = s
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

func validParams() Params {
	return Params{Term: "予算", Start: "2021-01-01", End: "2021-02-01"}
}
