package graphql

import "context"

// Bill is the field superset the bill fuser needs: display fields,
// cross-reference counts, and the status date timeline.
type Bill struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BillNumber   string   `json:"billNumber"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	TotalNews    int      `json:"totalNews"`
	TotalMinutes int      `json:"totalMinutes"`
	URLs         []URL    `json:"urls"`

	SubmittedDate                      *Date `json:"submittedDate"`
	PassedRepresentativesCommitteeDate *Date `json:"passedRepresentativesCommitteeDate"`
	PassedRepresentativesDate          *Date `json:"passedRepresentativesDate"`
	PassedCouncilorsCommitteeDate      *Date `json:"passedCouncilorsCommitteeDate"`
	PassedCouncilorsDate               *Date `json:"passedCouncilorsDate"`
	ProclaimedDate                     *Date `json:"proclaimedDate"`
}

// URL is a titled external link attached to a bill.
type URL struct {
	Title string `json:"title"`
}

const bulkBillsQuery = `query BulkBills($ids: [ID!]!) {
  bill(filter: {id_in: $ids}) {
    id
    name
    billNumber
    category
    tags
    totalNews
    totalMinutes
    urls { title }
    submittedDate { formatted }
    passedRepresentativesCommitteeDate { formatted }
    passedRepresentativesDate { formatted }
    passedCouncilorsCommitteeDate { formatted }
    passedCouncilorsDate { formatted }
    proclaimedDate { formatted }
  }
}`

// BulkBills fetches the bills for the given IDs in one batched call and maps
// them by ID. IDs the service does not know are silently absent from the
// result; an empty ID list returns an empty map without any call, since an
// empty id_in filter would match everything.
func (c *Client) BulkBills(ctx context.Context, ids []string) (map[string]Bill, error) {
	out := make(map[string]Bill, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var data struct {
		Bill []Bill `json:"bill"`
	}
	if err := c.do(ctx, "bulk_bills", bulkBillsQuery, map[string]any{"ids": ids}, &data); err != nil {
		return nil, err
	}
	for _, b := range data.Bill {
		out[b.ID] = b
	}
	return out, nil
}
