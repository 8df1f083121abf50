package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/graphql"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"valid", func(*Params) {}, nil},
		{"empty term", func(p *Params) { p.Term = "" }, domain.ErrInvalidQuery},
		{"bad start", func(p *Params) { p.Start = "01/01/2021" }, domain.ErrInvalidDateRange},
		{"bad end", func(p *Params) { p.End = "" }, domain.ErrInvalidDateRange},
		{"start equals end", func(p *Params) { p.End = p.Start }, domain.ErrInvalidDateRange},
		{"start after end", func(p *Params) { p.Start = "2021-03-01" }, domain.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildBody(t *testing.T) {
	p := validParams()
	p.Committee = "予算委員会"
	body := buildBody(p, 5, 100)

	b := body.Query.Bool
	if len(b.Must) != 2 {
		t.Fatalf("must = %+v, want term match and committee match", b.Must)
	}
	mm := b.Must[0].MultiMatch
	if mm.Query != "予算" || len(mm.Fields) != 1 || mm.Fields[0] != fieldBody {
		t.Errorf("term clause = %+v", mm)
	}
	if b.Must[1].Match[fieldTitle] != "予算委員会" {
		t.Errorf("committee clause = %+v", b.Must[1])
	}

	r := b.Filter[0].Range[fieldDate]
	if r.GTE != "2021-01-01" || r.LT != "2021-02-01" {
		t.Errorf("date range = %+v, want half-open [start, end)", r)
	}
	if *body.From != 0 || *body.Size != 5 {
		t.Errorf("window = (%d, %d), want (0, 5)", *body.From, *body.Size)
	}
	if got := body.Source.Excludes; len(got) != 1 || got[0] != fieldBody {
		t.Errorf("excludes = %v, want body", got)
	}
}

func TestBuildBodyNoCommittee(t *testing.T) {
	body := buildBody(validParams(), 3, 100)
	if got := len(body.Query.Bool.Must); got != 1 {
		t.Errorf("must has %d clauses, want 1 without committee", got)
	}
}

func TestServiceSearch(t *testing.T) {
	index := &fakeIndex{resp: respOf(8,
		hit(t, "Speech:1", source{Speaker: "山田太郎", Date: "2021-01-15"},
			map[string][]string{"body": {"<b>予算</b>について"}}),
	)}
	data := &fakeData{speeches: map[string]graphql.Speech{
		"Speech:1": {
			ID:             "Speech:1",
			OrderInMinutes: 7,
			BelongedToMinutes: &graphql.Minutes{
				ID: "Minutes:abc", Name: "衆議院予算委員会", NdlMinID: "100105254X00819210115",
			},
			BeDeliveredByMember: &graphql.MemberRef{ID: "Member:xyz", Name: "山田太郎"},
		},
	}}
	s := New(index, data, "speech")

	env, err := s.Search(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if index.lastIndex != "speech" {
		t.Errorf("index name = %q, want speech", index.lastIndex)
	}
	if len(data.lastIDs) != 1 || data.lastIDs[0] != "Speech:1" {
		t.Errorf("enrichment IDs = %v, want one batched call with the hit IDs", data.lastIDs)
	}
	if env.TotalCount != 8 || len(env.Items) != 1 {
		t.Fatalf("envelope = %+v", env)
	}

	got := env.Items[0]
	if got.Body != "<b>予算</b>について" {
		t.Errorf("body = %q, want the highlight fragment", got.Body)
	}
	if got.MinutesURL != "https://politylink.jp/minutes/abc" {
		t.Errorf("minutesUrl = %q", got.MinutesURL)
	}
	if got.SpeechNdlURL != "https://kokkai.ndl.go.jp/txt/100105254X00819210115/7" {
		t.Errorf("speechNdlUrl = %q", got.SpeechNdlURL)
	}
	if got.MemberImageURL != "https://image.politylink.jp/member/xyz" {
		t.Errorf("memberImageUrl = %q", got.MemberImageURL)
	}
}

func TestServiceSearchInvalidParams(t *testing.T) {
	index := &fakeIndex{}
	s := New(index, &fakeData{}, "speech")

	p := validParams()
	p.Term = ""
	_, err := s.Search(context.Background(), p)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("error = %v, want ErrInvalidQuery", err)
	}
	if index.lastBody != nil {
		t.Error("invalid params must not reach the index")
	}
}

func TestServiceSearchDefaultItems(t *testing.T) {
	index := &fakeIndex{resp: respOf(0)}
	s := New(index, &fakeData{}, "speech")

	if _, err := s.Search(context.Background(), validParams()); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if *index.lastBody.Size != 3 {
		t.Errorf("size = %d, want default 3", *index.lastBody.Size)
	}
}
