// Package wordcloud aggregates precomputed per-minutes term statistics into
// windowed TF/TF-IDF rankings for word-cloud display.
package wordcloud

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/termstats"
)

const dateLayout = "2006-01-02"

// Minutes is one meeting in the catalog. Only meetings with a transcript
// carry term statistics.
type Minutes struct {
	ID            string
	Name          string
	HasTranscript bool
	Date          time.Time
}

// Diet is one parliamentary session with its date range.
type Diet struct {
	Number int
	Start  time.Time
	End    time.Time
}

// StatsReader provides the current term-statistics snapshot.
type StatsReader interface {
	Snapshot() termstats.Table
}

// Params select the aggregation target. Either DietNumber or the
// Start/End pair bounds the range (half-open). Interval of zero yields a
// single window; a positive interval (days) yields week-aligned windows.
type Params struct {
	Start      string
	End        string
	Committee  string
	DietNumber int
	Interval   int
	NumItems   int
}

// Window is one aggregated slice of the requested range.
type Window struct {
	Start string             `json:"start"`
	End   string             `json:"end"`
	TF    map[string]float64 `json:"tf"`
	TFIDF map[string]float64 `json:"tfidf"`
}

// Service computes windowed aggregations. The minutes and diet catalogs are
// fetched once at startup and immutable afterwards.
type Service struct {
	stats   StatsReader
	minutes []Minutes
	diets   map[int]Diet
}

// New creates a word-cloud service over the given catalogs.
func New(stats StatsReader, minutes []Minutes, diets []Diet) *Service {
	dietsByNumber := make(map[int]Diet, len(diets))
	for _, d := range diets {
		dietsByNumber[d.Number] = d
	}
	return &Service{stats: stats, minutes: minutes, diets: dietsByNumber}
}

// Calc aggregates TF and TF-IDF per window over the selected minutes.
func (s *Service) Calc(_ context.Context, p Params) ([]Window, error) {
	start, end, err := s.resolveRange(p)
	if err != nil {
		return nil, err
	}
	numItems := p.NumItems
	if numItems <= 0 {
		numItems = 200
	}

	table := s.stats.Snapshot()

	var out []Window
	for _, w := range windows(start, end, p.Interval) {
		ids := s.targetMinutesIDs(w.start, w.end, p.Committee)
		tf, tfidf := topTerms(mergeStats(table, ids), numItems)
		out = append(out, Window{
			Start: w.start.Format(dateLayout),
			End:   w.end.Format(dateLayout),
			TF:    tf,
			TFIDF: tfidf,
		})
	}
	return out, nil
}

// resolveRange picks the diet's date span when a diet number is given,
// otherwise parses the explicit half-open range.
func (s *Service) resolveRange(p Params) (time.Time, time.Time, error) {
	if p.DietNumber != 0 {
		diet, ok := s.diets[p.DietNumber]
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown diet %d",
				domain.ErrInvalidDateRange, p.DietNumber)
		}
		// The diet range is inclusive; extend the end to keep half-open
		// semantics.
		return diet.Start, diet.End.AddDate(0, 0, 1), nil
	}

	start, err := time.Parse(dateLayout, p.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", domain.ErrInvalidDateRange, p.Start)
	}
	end, err := time.Parse(dateLayout, p.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", domain.ErrInvalidDateRange, p.End)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: [%s, %s)", domain.ErrInvalidDateRange, p.Start, p.End)
	}
	return start, end, nil
}

type span struct {
	start time.Time
	end   time.Time
}

// windows splits [start, end) into interval-day windows. The first window
// ends on a week boundary (Monday) so consecutive calls with adjacent ranges
// produce aligned windows; the last window may be partial.
func windows(start, end time.Time, interval int) []span {
	if interval <= 0 {
		return []span{{start, end}}
	}

	var spans []span
	weekday := (int(start.Weekday()) + 6) % 7 // Monday = 0
	windowStart := start
	windowEnd := start.AddDate(0, 0, interval-weekday)
	for !windowEnd.After(end) {
		spans = append(spans, span{windowStart, windowEnd})
		windowStart = windowEnd
		windowEnd = windowStart.AddDate(0, 0, interval)
	}
	if windowStart.Before(end) {
		spans = append(spans, span{windowStart, end})
	}
	return spans
}

// targetMinutesIDs selects transcript-bearing minutes within [start, end)
// whose name contains the committee filter.
func (s *Service) targetMinutesIDs(start, end time.Time, committee string) []string {
	var ids []string
	for _, m := range s.minutes {
		if !m.HasTranscript {
			continue
		}
		if m.Date.Before(start) || !m.Date.Before(end) {
			continue
		}
		if committee != "" && !strings.Contains(m.Name, committee) {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}

// mergeStats sums TF and TF-IDF per term across the selected minutes.
func mergeStats(table termstats.Table, ids []string) map[string]termstats.Stats {
	merged := make(map[string]termstats.Stats)
	for _, id := range ids {
		for term, stats := range table[id] {
			m := merged[term]
			m.TF += stats.TF
			m.TFIDF += stats.TFIDF
			merged[term] = m
		}
	}
	return merged
}

// topTerms keeps the numItems terms with the highest TF-IDF and returns
// their TF and TF-IDF maps. Equal weights are broken by term for
// deterministic output.
func topTerms(merged map[string]termstats.Stats, numItems int) (map[string]float64, map[string]float64) {
	terms := make([]string, 0, len(merged))
	for term := range merged {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := merged[terms[i]], merged[terms[j]]
		if a.TFIDF != b.TFIDF {
			return a.TFIDF > b.TFIDF
		}
		return terms[i] < terms[j]
	})
	if len(terms) > numItems {
		terms = terms[:numItems]
	}

	tf := make(map[string]float64, len(terms))
	tfidf := make(map[string]float64, len(terms))
	for _, term := range terms {
		tf[term] = merged[term].TF
		tfidf[term] = merged[term].TFIDF
	}
	return tf, tfidf
}
