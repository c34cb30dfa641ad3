package productlines

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/sqlite"
	"binlabeler/models"
)

// ListProductLines returns product line names in display order.
func ListProductLines(ctx context.Context, db *sqlite.DB) ([]string, error) {
	names := make([]string, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT name FROM product_lines ORDER BY position ASC, id ASC`).Scan(ctx, &names)
	})
	return names, err
}

// ReplaceProductLines overwrites the product line set with the posted
// sequence, dropping blank names and collapsing duplicates to their first
// occurrence.
func ReplaceProductLines(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, names []string) error {
	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_lines`); err != nil {
			return fmt.Errorf("clear product lines: %w", err)
		}
		for i, name := range cleaned {
			line := models.ProductLine{Name: name, Position: int64(i)}
			if _, err := tx.NewInsert().Model(&line).Exec(ctx); err != nil {
				return fmt.Errorf("insert product line %s: %w", name, err)
			}
		}
		if auditSvc != nil {
			after := map[string]any{"product_lines": len(cleaned)}
			if err := auditSvc.Write(ctx, tx, "product_lines.save", "product_lines", "all", nil, after); err != nil {
				return err
			}
		}
		return nil
	})
}
