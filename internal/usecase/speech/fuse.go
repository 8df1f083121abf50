package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
	"github.com/politylink/polisearch/internal/logger"
)

// source is the typed view of an indexed speech document; the body field is
// excluded from the source and arrives only as a highlight fragment.
type source struct {
	Speaker string `json:"speaker"`
	Date    string `json:"date"`
}

// Record is one fused speech result.
type Record struct {
	SpeechID       string `json:"speechId"`
	Speaker        string `json:"speaker"`
	Date           string `json:"date"`
	Body           string `json:"body"`
	MinutesID      string `json:"minutesId,omitempty"`
	MinutesName    string `json:"minutesName,omitempty"`
	MinutesURL     string `json:"minutesUrl,omitempty"`
	SpeechNdlURL   string `json:"speechNdlUrl,omitempty"`
	MemberID       string `json:"memberId,omitempty"`
	MemberName     string `json:"memberName,omitempty"`
	MemberURL      string `json:"memberUrl,omitempty"`
	MemberImageURL string `json:"memberImageUrl,omitempty"`
}

// Envelope is the response payload.
type Envelope struct {
	TotalCount int      `json:"totalCount"`
	Items      []Record `json:"items"`
}

func fuse(ctx context.Context, resp *es.Response, infos map[string]graphql.Speech) (Envelope, error) {
	log := logger.FromContext(ctx)

	records := make([]Record, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		info, ok := infos[hit.ID]
		if !ok {
			log.Warn("speech enrichment record missing", zap.String("id", hit.ID))
			continue
		}

		record, err := buildRecord(hit, info)
		if err != nil {
			return Envelope{}, err
		}
		records = append(records, record)
	}

	return Envelope{TotalCount: resp.Hits.Total.Value, Items: records}, nil
}

func buildRecord(hit es.Hit, info graphql.Speech) (Record, error) {
	var src source
	if err := json.Unmarshal(hit.Source, &src); err != nil {
		return Record{}, fmt.Errorf("decode speech hit %s: %w", hit.ID, err)
	}

	var fragment string
	if frags := hit.Highlight[fieldBody]; len(frags) > 0 {
		fragment = frags[0]
	}

	record := Record{
		SpeechID: hit.ID,
		Speaker:  src.Speaker,
		Date:     src.Date,
		Body:     fragment,
	}

	if m := info.BelongedToMinutes; m != nil {
		url, err := resourceURL(m.ID, "politylink.jp")
		if err != nil {
			return Record{}, err
		}
		record.MinutesID = m.ID
		record.MinutesName = m.Name
		record.MinutesURL = url
		if m.NdlMinID != "" {
			record.SpeechNdlURL = fmt.Sprintf("https://kokkai.ndl.go.jp/txt/%s/%d",
				m.NdlMinID, info.OrderInMinutes)
		}
	}

	if m := info.BeDeliveredByMember; m != nil {
		url, err := resourceURL(m.ID, "politylink.jp")
		if err != nil {
			return Record{}, err
		}
		imageURL, err := resourceURL(m.ID, "image.politylink.jp")
		if err != nil {
			return Record{}, err
		}
		record.MemberID = m.ID
		record.MemberName = m.Name
		record.MemberURL = url
		record.MemberImageURL = imageURL
	}

	return record, nil
}

// resourceURL turns a class:base identifier into its public URL.
func resourceURL(id, host string) (string, error) {
	class, base, ok := strings.Cut(id, ":")
	if !ok || class == "" || base == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedID, id)
	}
	return fmt.Sprintf("https://%s/%s/%s", host, strings.ToLower(class), base), nil
}
