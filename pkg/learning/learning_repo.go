package learning

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Append(ctx context.Context, item Item) (Item, error)
	List(ctx context.Context) ([]Item, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewLearningRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Append(ctx context.Context, item Item) (Item, error) {
	query := `INSERT INTO learning_items (item_type, name, content, image)
				VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, item.ItemType, item.Name, item.Content, item.Image).
		Scan(&item.Id, &item.CreatedAt)
	if err != nil {
		log.Errorf("failed to store learning item: %v", err)
		return Item{}, err
	}
	return item, nil
}

func (r *RepoImpl) List(ctx context.Context) ([]Item, error) {
	query := `SELECT id, item_type, name, content, image, created_at FROM learning_items ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to query learning items: %v", err)
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0, 20)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.Id, &item.ItemType, &item.Name, &item.Content, &item.Image, &item.CreatedAt); err != nil {
			log.Errorf("failed to scan learning item: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return items, nil
}
