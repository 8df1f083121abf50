package graphql

import "context"

// Member carries the authoritative member fields plus the activity timeline
// the fuser reduces to a latest-activity summary.
type Member struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	NameHira   string     `json:"nameHira"`
	Group      string     `json:"group"`
	Activities []Activity `json:"activities"`
}

// Activity is one timeline entry. Exactly one of Bill or Minutes is expected
// to be set; a record with neither violates the data contract.
type Activity struct {
	Datetime *Date `json:"datetime"`
	Bill     *Ref  `json:"bill"`
	Minutes  *Ref  `json:"minutes"`
}

// Ref is a named reference to another entity.
type Ref struct {
	Name string `json:"name"`
}

const bulkMembersQuery = `query BulkMembers($ids: [ID!]!) {
  member(filter: {id_in: $ids}) {
    id
    name
    nameHira
    group
    activities {
      datetime { formatted }
      bill { name }
      minutes { name }
    }
  }
}`

// BulkMembers fetches the members for the given IDs in one batched call and
// maps them by ID. Missing IDs are absent from the result; an empty ID list
// short-circuits without a call.
func (c *Client) BulkMembers(ctx context.Context, ids []string) (map[string]Member, error) {
	out := make(map[string]Member, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var data struct {
		Member []Member `json:"member"`
	}
	if err := c.do(ctx, "bulk_members", bulkMembersQuery, map[string]any{"ids": ids}, &data); err != nil {
		return nil, err
	}
	for _, m := range data.Member {
		out[m.ID] = m
	}
	return out, nil
}
