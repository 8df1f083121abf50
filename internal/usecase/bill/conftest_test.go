package bill

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
)

// fakeIndex records the last search body and plays back a canned response.
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

// fakeData serves bill records from a fixed map.
type fakeData struct {
	lastIDs []string
	bills   map[string]graphql.Bill
	err     error
}

func (f *fakeData) BulkBills(_ context.Context, ids []string) (map[string]graphql.Bill, error) {
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]graphql.Bill, len(ids))
	for _, id := range ids {
		if b, ok := f.bills[id]; ok {
			out[id] = b
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

func billInfo(id, name, number string) graphql.Bill {
	return graphql.Bill{
		ID:            id,
		Name:          name,
		BillNumber:    number,
		SubmittedDate: &graphql.Date{Formatted: "2021-02-01"},
	}
}
