package bill

import (
	"context"
	"errors"
	"testing"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/graphql"
)

func TestServiceSearch(t *testing.T) {
	index := &fakeIndex{resp: respOf(1,
		hit(t, "Bill:1", source{ID: "Bill:1", Reason: "環境保全のため"}, nil),
	)}
	data := &fakeData{bills: map[string]graphql.Bill{
		"Bill:1": billInfo("Bill:1", "環境基本法改正案", "第204回国会衆法第6号"),
	}}
	s := New(index, data, "bill")

	env, err := s.Search(context.Background(), Params{Query: "環境", Page: 1, NumItems: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if index.lastIndex != "bill" {
		t.Errorf("index name = %q, want bill", index.lastIndex)
	}
	if len(data.lastIDs) != 1 || data.lastIDs[0] != "Bill:1" {
		t.Errorf("enrichment IDs = %v, want the hit IDs", data.lastIDs)
	}
	if env.TotalCount != 1 || len(env.Items) != 1 {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Items[0].Name != "環境基本法改正案" {
		t.Errorf("name = %q", env.Items[0].Name)
	}
}

func TestServiceSearchInvalidPage(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	_, err := s.Search(context.Background(), Params{Page: 0, NumItems: 3})
	if !errors.Is(err, domain.ErrInvalidPage) {
		t.Errorf("error = %v, want ErrInvalidPage", err)
	}
}

func TestServiceSearchDefaultFragmentSize(t *testing.T) {
	index := &fakeIndex{resp: respOf(0)}
	s := New(index, &fakeData{}, "bill")

	if _, err := s.Search(context.Background(), Params{Query: "環境", Page: 1, NumItems: 3}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if index.lastBody.Highlight.FragmentSize != 100 {
		t.Errorf("fragment size = %d, want default 100", index.lastBody.Highlight.FragmentSize)
	}
}

func TestServiceSearchIndexError(t *testing.T) {
	index := &fakeIndex{err: domain.ErrBackendUnavailable}
	s := New(index, &fakeData{}, "bill")

	_, err := s.Search(context.Background(), Params{Page: 1, NumItems: 3})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestServiceSearchDataError(t *testing.T) {
	index := &fakeIndex{resp: respOf(1, hit(t, "Bill:1", source{ID: "Bill:1"}, nil))}
	data := &fakeData{err: domain.ErrBackendUnavailable}
	s := New(index, data, "bill")

	_, err := s.Search(context.Background(), Params{Page: 1, NumItems: 3})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}
