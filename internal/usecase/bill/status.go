package bill

import "github.com/politylink/polisearch/internal/graphql"

// DefaultStatusLabel applies when no life-cycle stage has a recorded date;
// an indexed bill has at least been submitted.
const DefaultStatusLabel = "提出"

// stages, earliest life-cycle stage first. Order matters for the tie-break.
var stages = []struct {
	label string
	date  func(graphql.Bill) *graphql.Date
}{
	{"提出", func(b graphql.Bill) *graphql.Date { return b.SubmittedDate }},
	{"衆委可決", func(b graphql.Bill) *graphql.Date { return b.PassedRepresentativesCommitteeDate }},
	{"衆可決", func(b graphql.Bill) *graphql.Date { return b.PassedRepresentativesDate }},
	{"参委可決", func(b graphql.Bill) *graphql.Date { return b.PassedCouncilorsCommitteeDate }},
	{"参可決", func(b graphql.Bill) *graphql.Date { return b.PassedCouncilorsDate }},
	{"公布", func(b graphql.Bill) *graphql.Date { return b.ProclaimedDate }},
}

// StatusLabel derives the display status from the bill's date timeline: the
// label of the latest-dated stage wins. The comparison is >= on purpose so
// that when two stages share a date, the later stage supersedes the earlier
// one: a bill passed by committee and chamber on the same day is 衆可決, not
// 衆委可決.
func StatusLabel(b graphql.Bill) string {
	label := DefaultStatusLabel
	max := ""
	for _, stage := range stages {
		d := stage.date(b)
		if d == nil || d.Formatted == "" {
			continue
		}
		if date := d.DateString(); date >= max {
			max = date
			label = stage.label
		}
	}
	return label
}
