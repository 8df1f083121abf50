package bill

import (
	"github.com/politylink/polisearch/internal/domain/billnum"
	"github.com/politylink/polisearch/internal/domain/search"
	"github.com/politylink/polisearch/internal/es"
)

// snippetFields is the highlight priority order for bills.
var snippetFields = []string{fieldReason, fieldBody, fieldSupplement}

// buildBody translates the search parameters into one index request.
//
// Three query shapes, in precedence order:
//   - the query text contains a formal bill number: exact phrase match on the
//     bill-number field, since a formal number must never rank as free text;
//   - free text: weighted multi-match rescored by recency decay, with body
//     and supplement joining the field list only on full-text opt-in;
//   - no text: browse mode, sorted by descending last-updated date.
func (s *Service) buildBody(p Params, page search.Page, fragmentSize int) *es.Body {
	body := &es.Body{
		Source: &es.Source{Excludes: []string{fieldBody, fieldSupplement}},
	}

	var query *es.Query
	switch {
	case p.Query == "":
		body.Sort = []map[string]es.Sort{es.SortDesc(fieldLastUpdatedDate)}
	default:
		if number := billnum.Extract(p.Query); number != "" {
			query = &es.Query{MatchPhrase: map[string]string{fieldBillNumber: number}}
			break
		}

		fields := []string{
			fieldTitle + "^100", fieldTags + "^100", fieldAliases + "^100",
			fieldBillNumber + "^100", fieldReason + "^10",
		}
		if p.FullText {
			fields = append(fields, fieldBody, fieldSupplement)
		}
		query = &es.Query{
			FunctionScore: &es.FunctionScore{
				Query: &es.Query{MultiMatch: &es.MultiMatch{Query: p.Query, Fields: fields}},
				Functions: []es.ScoreFunction{{
					Gauss: map[string]es.Gauss{
						fieldLastUpdatedDate: {Scale: s.decay.Scale, Decay: s.decay.Weight},
					},
				}},
			},
		}
		body.Highlight = es.NewHighlight(snippetFields, fragmentSize)
	}

	filters := buildFilters(p)
	switch {
	case len(filters) == 0:
		body.Query = query
	case query == nil:
		body.Query = &es.Query{Bool: &es.BoolQuery{Filter: filters}}
	default:
		body.Query = &es.Query{Bool: &es.BoolQuery{Must: []es.Query{*query}, Filter: filters}}
	}

	return body.Window(page.From(), page.Size())
}

// buildFilters ANDs one terms filter per non-empty facet; values within a
// facet are OR'd by terms semantics.
func buildFilters(p Params) []es.Query {
	facets := []struct {
		field  string
		values []string
	}{
		{fieldCategory, p.Categories},
		{fieldStatus, p.Statuses},
		{fieldBelongedToDiets, p.BelongedToDiets},
		{fieldSubmittedDiet, p.SubmittedDiets},
		{fieldSubmittedGroups, p.SubmittedGroups},
		{fieldSupportedGroups, p.SupportedGroups},
		{fieldOpposedGroups, p.OpposedGroups},
	}

	var filters []es.Query
	for _, f := range facets {
		if len(f.values) == 0 {
			continue
		}
		filters = append(filters, es.Query{Terms: map[string][]string{f.field: f.values}})
	}
	return filters
}
