package bill

import (
	"testing"

	"github.com/politylink/polisearch/internal/domain/search"
)

func mustPage(t *testing.T, number, size int) search.Page {
	t.Helper()
	p, err := search.NewPage(number, size)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}

func TestBuildBodyBrowse(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{}, mustPage(t, 1, 3), 100)

	if body.Query != nil {
		t.Errorf("browse body should have no query, got %+v", body.Query)
	}
	if len(body.Sort) != 1 {
		t.Fatalf("sort = %v, want one clause", body.Sort)
	}
	if clause, ok := body.Sort[0][fieldLastUpdatedDate]; !ok || clause.Order != "desc" {
		t.Errorf("sort clause = %v, want last_updated_date desc", body.Sort[0])
	}
	if body.Highlight != nil {
		t.Error("browse body should not request highlighting")
	}
	if *body.From != 0 || *body.Size != 3 {
		t.Errorf("window = (%d, %d), want (0, 3)", *body.From, *body.Size)
	}
}

func TestBuildBodyBillNumberPrecision(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{Query: "第204回国会衆法第6号 の審議"}, mustPage(t, 1, 3), 100)

	phrase := body.Query.MatchPhrase
	if phrase == nil {
		t.Fatalf("query = %+v, want match_phrase", body.Query)
	}
	if phrase[fieldBillNumber] != "第204回国会衆法第6号" {
		t.Errorf("match_phrase = %v", phrase)
	}
	if body.Query.FunctionScore != nil {
		t.Error("bill-number query must not be scored as free text")
	}
}

func TestBuildBodyRelevance(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{Query: "環境"}, mustPage(t, 1, 3), 100)

	fs := body.Query.FunctionScore
	if fs == nil {
		t.Fatalf("query = %+v, want function_score", body.Query)
	}
	mm := fs.Query.MultiMatch
	if mm == nil || mm.Query != "環境" {
		t.Fatalf("inner query = %+v, want multi_match", fs.Query)
	}
	if len(mm.Fields) != 5 {
		t.Errorf("fields = %v, want 5 weighted fields without body/supplement", mm.Fields)
	}
	gauss := fs.Functions[0].Gauss[fieldLastUpdatedDate]
	if gauss.Scale != "180d" || gauss.Decay != 0.8 {
		t.Errorf("gauss = %+v, want default decay", gauss)
	}
	if body.Highlight == nil {
		t.Fatal("relevance body should request highlighting")
	}
	if _, ok := body.Highlight.Fields[fieldReason]; !ok {
		t.Errorf("highlight fields = %v, want reason", body.Highlight.Fields)
	}
}

func TestBuildBodyFullText(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{Query: "環境", FullText: true}, mustPage(t, 1, 3), 100)

	fields := body.Query.FunctionScore.Query.MultiMatch.Fields
	if len(fields) != 7 {
		t.Fatalf("fields = %v, want body and supplement appended", fields)
	}
	if fields[5] != fieldBody || fields[6] != fieldSupplement {
		t.Errorf("fields = %v, want unweighted body/supplement last", fields)
	}
}

func TestBuildBodyFilters(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{
		Query:           "環境",
		Categories:      []string{"KAKUHOU", "SHUHOU"},
		SubmittedGroups: []string{"JIMIN"},
	}, mustPage(t, 1, 3), 100)

	b := body.Query.Bool
	if b == nil {
		t.Fatalf("query = %+v, want bool", body.Query)
	}
	if len(b.Must) != 1 || b.Must[0].FunctionScore == nil {
		t.Errorf("must = %+v, want the scored query", b.Must)
	}
	if len(b.Filter) != 2 {
		t.Fatalf("filter = %+v, want one terms clause per facet", b.Filter)
	}
	if got := b.Filter[0].Terms[fieldCategory]; len(got) != 2 {
		t.Errorf("category terms = %v", got)
	}
}

func TestBuildBodyFiltersWithoutQuery(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{Statuses: []string{"提出"}}, mustPage(t, 1, 3), 100)

	b := body.Query.Bool
	if b == nil {
		t.Fatalf("query = %+v, want bool", body.Query)
	}
	if len(b.Must) != 0 {
		t.Errorf("must = %+v, want filters only", b.Must)
	}
	if len(b.Filter) != 1 {
		t.Errorf("filter = %+v", b.Filter)
	}
	if len(body.Sort) != 1 {
		t.Errorf("filtered browse should keep the recency sort, got %v", body.Sort)
	}
}

func TestBuildBodyPagination(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{}, mustPage(t, 3, 10), 100)

	if *body.From != 20 || *body.Size != 10 {
		t.Errorf("window = (%d, %d), want (20, 10)", *body.From, *body.Size)
	}
}

func TestBuildBodySourceExcludes(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill")
	body := s.buildBody(Params{Query: "環境", FullText: true}, mustPage(t, 1, 3), 100)

	got := body.Source.Excludes
	if len(got) != 2 || got[0] != fieldBody || got[1] != fieldSupplement {
		t.Errorf("excludes = %v, want body and supplement", got)
	}
}

func TestWithDecay(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill").WithDecay(Decay{Scale: "90d", Weight: 0.5})
	body := s.buildBody(Params{Query: "環境"}, mustPage(t, 1, 3), 100)

	gauss := body.Query.FunctionScore.Functions[0].Gauss[fieldLastUpdatedDate]
	if gauss.Scale != "90d" || gauss.Decay != 0.5 {
		t.Errorf("gauss = %+v, want overridden decay", gauss)
	}
}

func TestWithDecayIgnoresInvalid(t *testing.T) {
	s := New(&fakeIndex{}, &fakeData{}, "bill").WithDecay(Decay{})
	if s.decay != DefaultDecay {
		t.Errorf("decay = %+v, want default kept", s.decay)
	}
}
