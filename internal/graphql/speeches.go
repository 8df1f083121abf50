package graphql

import "context"

// Speech links a speech to its minutes and speaker for enrichment.
type Speech struct {
	ID                  string     `json:"id"`
	OrderInMinutes      int        `json:"orderInMinutes"`
	BelongedToMinutes   *Minutes   `json:"belongedToMinutes"`
	BeDeliveredByMember *MemberRef `json:"beDeliveredByMember"`
}

// Minutes is the meeting a speech belongs to. NdlMinID is the national
// library's transcript identifier, empty when no transcript exists.
type Minutes struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NdlMinID string `json:"ndlMinId"`
}

// MemberRef identifies the member who delivered a speech.
type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const bulkSpeechesQuery = `query BulkSpeeches($ids: [ID!]!) {
  speech(filter: {id_in: $ids}) {
    id
    orderInMinutes
    belongedToMinutes { id name ndlMinId }
    beDeliveredByMember { id name }
  }
}`

// BulkSpeeches fetches the speeches for the given IDs in one batched call and
// maps them by ID. Missing IDs are absent from the result; an empty ID list
// short-circuits without a call.
func (c *Client) BulkSpeeches(ctx context.Context, ids []string) (map[string]Speech, error) {
	out := make(map[string]Speech, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var data struct {
		Speech []Speech `json:"speech"`
	}
	if err := c.do(ctx, "bulk_speeches", bulkSpeechesQuery, map[string]any{"ids": ids}, &data); err != nil {
		return nil, err
	}
	for _, s := range data.Speech {
		out[s.ID] = s
	}
	return out, nil
}
