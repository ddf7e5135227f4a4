package repository

import (
	"context"
	"fmt"

	"github.com/subscore/subscore-api/internal/models"
)

// Списки ID в выборке категорий режутся на партии,
// чтобы один запрос не разрастался без ограничений.
const categoryBatchSize = 100

// ListCategories возвращает весь справочник категорий.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name FROM categories ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCategoriesByIDs возвращает категории по набору идентификаторов.
// Набор обрабатывается партиями по categoryBatchSize.
func (s *Storage) ListCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error) {
	const op = "storage.ListCategoriesByIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result []*models.Category
	for start := 0; start < len(ids); start += categoryBatchSize {
		end := start + categoryBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		query := `SELECT id, name FROM categories WHERE id = ANY($1)`
		rows, err := s.DB.QueryContext(ctx, query, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for rows.Next() {
			var item models.Category
			if err := rows.Scan(&item.ID, &item.Name); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			result = append(result, &item)
		}
		if err = rows.Err(); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = rows.Close(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return result, nil
}
