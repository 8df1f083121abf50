package member

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/domain/search"
	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
	"github.com/politylink/polisearch/internal/logger"
)

// houseLabels maps the index's numeric house codes to display labels.
var houseLabels = map[int]string{
	1: "衆議院",
	2: "参議院",
}

// groupLabels maps the data service's group enum to display labels.
var groupLabels = map[string]string{
	"JIMIN":     "自民",
	"RIKKEN":    "立憲",
	"KOMEI":     "公明",
	"KYOSAN":    "共産",
	"ISHIN":     "維新",
	"KOKUMIN":   "国民",
	"SHAMIN":    "社民",
	"REIWA":     "れいわ",
	"MUSHOZOKU": "無所属",
}

// source is the typed view of an indexed member document.
type source struct {
	Description string `json:"description"`
	House       *int   `json:"house"`
}

// ActivityInfo summarizes a member's latest recorded activity.
type ActivityInfo struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Record is one fused member result.
type Record struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	NameHira string        `json:"nameHira"`
	Group    string        `json:"group,omitempty"`
	House    string        `json:"house,omitempty"`
	Fragment string        `json:"fragment"`
	Activity *ActivityInfo `json:"activity,omitempty"`
}

// Envelope is the paginated response payload.
type Envelope struct {
	TotalCount int      `json:"totalCount"`
	Items      []Record `json:"items"`
}

func fuse(ctx context.Context, resp *es.Response, infos map[string]graphql.Member, fragmentSize int) (Envelope, error) {
	log := logger.FromContext(ctx)

	records := make([]Record, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		info, ok := infos[hit.ID]
		if !ok {
			log.Warn("member enrichment record missing", zap.String("id", hit.ID))
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

func buildRecord(hit es.Hit, info graphql.Member, fragmentSize int) (Record, error) {
	var src source
	if err := json.Unmarshal(hit.Source, &src); err != nil {
		return Record{}, fmt.Errorf("decode member hit %s: %w", hit.ID, err)
	}

	record := Record{
		ID:       hit.ID,
		Name:     info.Name,
		NameHira: info.NameHira,
		Group:    groupLabels[info.Group],
		Fragment: search.Snippet(hit.Highlight, snippetFields, src.Description, fragmentSize),
	}
	if src.House != nil {
		record.House = houseLabels[*src.House]
	}

	if latest := latestActivity(info.Activities); latest != nil {
		activity, err := buildActivityInfo(hit.ID, *latest)
		if err != nil {
			return Record{}, err
		}
		record.Activity = activity
	}

	return record, nil
}

// latestActivity returns the activity with the maximum datetime, or nil.
func latestActivity(activities []graphql.Activity) *graphql.Activity {
	var latest *graphql.Activity
	for i := range activities {
		a := &activities[i]
		if a.Datetime == nil {
			continue
		}
		if latest == nil || a.Datetime.Formatted > latest.Datetime.Formatted {
			latest = a
		}
	}
	return latest
}

// buildActivityInfo derives the activity type and message. An activity with
// neither a bill nor a minutes reference violates the data contract and is
// fatal, unlike a missing enrichment record.
func buildActivityInfo(memberID string, a graphql.Activity) (*ActivityInfo, error) {
	info := &ActivityInfo{Date: a.Datetime.DateString()}
	switch {
	case a.Bill != nil:
		info.Type = "bill"
		info.Message = fmt.Sprintf("%sを提出しました", a.Bill.Name)
	case a.Minutes != nil:
		info.Type = "minutes"
		info.Message = fmt.Sprintf("%sで発言しました", a.Minutes.Name)
	default:
		return nil, fmt.Errorf("%w: member %s", domain.ErrMalformedActivity, memberID)
	}
	return info, nil
}
