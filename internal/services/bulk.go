package services

import "context"

type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type BulkDeleteResult struct {
	Deleted []string      `json:"deleted"`
	Failed  []BulkFailure `json:"failed"`
}

// BulkDelete calls del once per id and reports each outcome.
func BulkDelete(ctx context.Context, ids []string, del func(ctx context.Context, id string) error) BulkDeleteResult {
	result := BulkDeleteResult{Deleted: []string{}, Failed: []BulkFailure{}}
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}
	return result
}
