package resources

import (
	"context"
	"encoding/json"
	"net/url"

	"console/internal/api"
	"console/internal/lookup"
)

// AccountSource feeds the account resolver so contract rows can show an
// account name instead of its id.
func AccountSource(client *api.Client) lookup.Source {
	return func(ctx context.Context) (map[string]string, error) {
		query := url.Values{}
		query.Set("page_size", "100")
		page, err := client.List(ctx, PathAccounts, query)
		if err != nil {
			return nil, err
		}
		labels := make(map[string]string, len(page.Items))
		for _, raw := range page.Items {
			var acc Account
			if err := json.Unmarshal(raw, &acc); err != nil {
				continue
			}
			labels[acc.ID] = acc.Name
		}
		return labels, nil
	}
}
