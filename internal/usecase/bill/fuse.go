package bill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/politylink/polisearch/internal/domain/billnum"
	"github.com/politylink/polisearch/internal/domain/search"
	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
	"github.com/politylink/polisearch/internal/logger"
)

// source is the typed view of an indexed bill document. Pointer fields model
// sparse indexing: an absent field stays nil.
type source struct {
	ID              string         `json:"id"`
	Reason          string         `json:"reason"`
	SubmittedDate   *string        `json:"submitted_date"`
	LastUpdatedDate *string        `json:"last_updated_date"`
	SubmittedDiet   *int           `json:"submitted_diet"`
	BelongedToDiets search.IntList `json:"belonged_to_diets"`
}

// Record is one fused bill result.
type Record struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	BillNumber      string   `json:"billNumber"`
	BillNumberShort string   `json:"billNumberShort"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags"`
	TotalNews       int      `json:"totalNews"`
	TotalMinutes    int      `json:"totalMinutes"`
	TotalPdfs       int      `json:"totalPdfs"`
	Fragment        string   `json:"fragment"`
	StatusLabel     string   `json:"statusLabel"`
	SubmittedDate   *string  `json:"submittedDate,omitempty"`
	LastUpdatedDate *string  `json:"lastUpdatedDate,omitempty"`
	SubmittedDiet   *int     `json:"submittedDiet,omitempty"`
	BelongedToDiets []int    `json:"belongedToDiets,omitempty"`
}

// Envelope is the paginated response payload.
type Envelope struct {
	TotalCount int      `json:"totalCount"`
	Items      []Record `json:"items"`
}

// fuse joins hits with their enrichment records in search order. A hit whose
// record is missing from the lookup is skipped with a warning; the total
// still reflects the index match count.
func fuse(ctx context.Context, resp *es.Response, infos map[string]graphql.Bill, fragmentSize int) (Envelope, error) {
	log := logger.FromContext(ctx)

	records := make([]Record, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		info, ok := infos[hit.ID]
		if !ok {
			log.Warn("bill enrichment record missing", zap.String("id", hit.ID))
			continue
		}

		record, err := buildRecord(hit, info, fragmentSize)
		if err != nil {
			return Envelope{}, err
		}
		records = append(records, record)
	}

	return Envelope{TotalCount: resp.Hits.Total.Value, Items: records}, nil
}

func buildRecord(hit es.Hit, info graphql.Bill, fragmentSize int) (Record, error) {
	var src source
	if err := json.Unmarshal(hit.Source, &src); err != nil {
		return Record{}, fmt.Errorf("decode bill hit %s: %w", hit.ID, err)
	}

	short, err := billnum.Short(info.BillNumber)
	if err != nil {
		return Record{}, fmt.Errorf("bill %s: %w", hit.ID, err)
	}

	tags := info.Tags
	if tags == nil {
		tags = []string{}
	}

	return Record{
		ID:              hit.ID,
		Name:            info.Name,
		BillNumber:      info.BillNumber,
		BillNumberShort: short,
		Category:        info.Category,
		Tags:            tags,
		TotalNews:       info.TotalNews,
		TotalMinutes:    info.TotalMinutes,
		TotalPdfs:       countPDFs(info.URLs),
		Fragment:        search.Snippet(hit.Highlight, snippetFields, src.Reason, fragmentSize),
		StatusLabel:     StatusLabel(info),
		SubmittedDate:   src.SubmittedDate,
		LastUpdatedDate: src.LastUpdatedDate,
		SubmittedDiet:   src.SubmittedDiet,
		BelongedToDiets: src.BelongedToDiets,
	}, nil
}

func countPDFs(urls []graphql.URL) int {
	n := 0
	for _, u := range urls {
		if strings.Contains(u.Title, "PDF") {
			n++
		}
	}
	return n
}
