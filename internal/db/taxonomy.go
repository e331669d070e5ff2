package db

import (
	"context"
	"fmt"
	"strings"
)

// StoreTaxonomyLabels persists labels minted for one open task kind. Pairs
// already stored are skipped.
func StoreTaxonomyLabels(ctx context.Context, kind string, labels []string) error {
	if DB == nil {
		return fmt.Errorf("postgres pool not initialized")
	}
	if len(labels) == 0 {
		return nil
	}

	query := `INSERT INTO taxonomy_labels (kind, label, created_at) VALUES `

	values := []interface{}{}
	placeholderParts := []string{}

	for i, label := range labels {
		offset := i * 2
		placeholderParts = append(placeholderParts, fmt.Sprintf("($%d, $%d, NOW())", offset+1, offset+2))
		values = append(values, kind, label)
	}

	query += strings.Join(placeholderParts, ", ")
	query += `
        ON CONFLICT (kind, label) DO NOTHING
    `

	_, err := DB.Exec(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("failed to insert taxonomy labels: %w", err)
	}

	return nil
}

// GetRecentTaxonomyLabels returns labels stored for kind over the last day,
// oldest first. Seeding a registry in this order restores the original
// first-seen display forms.
func GetRecentTaxonomyLabels(ctx context.Context, kind string) ([]string, error) {
	if DB == nil {
		return nil, fmt.Errorf("postgres pool not initialized")
	}

	query := `
        SELECT label FROM taxonomy_labels
        WHERE kind = $1 AND created_at > NOW() - INTERVAL '1 day'
        ORDER BY id
    `

	rows, err := DB.Query(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	return labels, nil
}
