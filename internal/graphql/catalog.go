package graphql

import "context"

// MinutesSummary is one meeting in the startup catalog used by the word-cloud
// aggregation.
type MinutesSummary struct {
	ID            string `json:"id"`
	NdlMinID      string `json:"ndlMinId"`
	Name          string `json:"name"`
	StartDateTime *Date  `json:"startDateTime"`
}

// Diet is one parliamentary session with its date range.
type Diet struct {
	Number    int   `json:"number"`
	StartDate *Date `json:"startDate"`
	EndDate   *Date `json:"endDate"`
}

const allMinutesQuery = `query AllMinutes {
  minutes {
    id
    ndlMinId
    name
    startDateTime { formatted }
  }
}`

const allDietsQuery = `query AllDiets {
  diet {
    number
    startDate { formatted }
    endDate { formatted }
  }
}`

// AllMinutes fetches the full minutes catalog.
func (c *Client) AllMinutes(ctx context.Context) ([]MinutesSummary, error) {
	var data struct {
		Minutes []MinutesSummary `json:"minutes"`
	}
	if err := c.do(ctx, "all_minutes", allMinutesQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Minutes, nil
}

// AllDiets fetches the diet session catalog.
func (c *Client) AllDiets(ctx context.Context) ([]Diet, error) {
	var data struct {
		Diet []Diet `json:"diet"`
	}
	if err := c.do(ctx, "all_diets", allDietsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Diet, nil
}
