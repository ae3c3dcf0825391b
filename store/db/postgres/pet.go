package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/patitas/patitas/store"
)

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (d *DB) CreatePet(ctx context.Context, create *store.Pet) (*store.Pet, error) {
	stmt := `
		INSERT INTO pet (name, district, reference, lat, lon, geo_cell, image_path, embedding, created_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.Name,
		create.District,
		create.Reference,
		create.Lat,
		create.Lon,
		create.GeoCell,
		create.ImagePath,
		pgvector.NewVector(create.Embedding),
		create.CreatedTs,
	).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to insert pet")
	}

	return create, nil
}

func (d *DB) ListPets(ctx context.Context, find *store.FindPet) ([]*store.Pet, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if len(find.IDs) > 0 {
		placeholders := make([]string, 0, len(find.IDs))
		for _, id := range find.IDs {
			args = append(args, id)
			placeholders = append(placeholders, placeholder(len(args)))
		}
		where = append(where, "id IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `
		SELECT id, name, district, reference, lat, lon, geo_cell, image_path, embedding, created_ts
		FROM pet
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id
	`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pets")
	}
	defer rows.Close()

	list := []*store.Pet{}
	for rows.Next() {
		var pet store.Pet
		var vector pgvector.Vector
		if err := rows.Scan(
			&pet.ID,
			&pet.Name,
			&pet.District,
			&pet.Reference,
			&pet.Lat,
			&pet.Lon,
			&pet.GeoCell,
			&pet.ImagePath,
			&vector,
			&pet.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan pet")
		}
		pet.Embedding = vector.Slice()
		list = append(list, &pet)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate pets")
	}

	return list, nil
}
