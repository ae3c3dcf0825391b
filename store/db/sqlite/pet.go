package sqlite

import (
	"context"
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/patitas/patitas/store"
)

// vectorToBlob converts a []float32 to a little-endian BLOB.
func vectorToBlob(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	return buf
}

// blobToVector converts a BLOB back to a float32 array.
// This is the inverse of vectorToBlob.
func blobToVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, errors.Errorf("invalid embedding blob length: %d", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		bits := binary.LittleEndian.Uint32(blob[i*4 : i*4+4])
		vec[i] = math.Float32frombits(bits)
	}
	return vec, nil
}

func (d *DB) CreatePet(ctx context.Context, create *store.Pet) (*store.Pet, error) {
	stmt := `
		INSERT INTO pet (name, district, reference, lat, lon, geo_cell, image_path, embedding, created_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.ExecContext(ctx, stmt,
		create.Name,
		create.District,
		create.Reference,
		create.Lat,
		create.Lon,
		create.GeoCell,
		create.ImagePath,
		vectorToBlob(create.Embedding),
		create.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert pet")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last insert id")
	}
	create.ID = id

	return create, nil
}

func (d *DB) ListPets(ctx context.Context, find *store.FindPet) ([]*store.Pet, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if len(find.IDs) > 0 {
		placeholders := make([]string, 0, len(find.IDs))
		for _, id := range find.IDs {
			placeholders = append(placeholders, "?")
			args = append(args, id)
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
		var blob []byte
		if err := rows.Scan(
			&pet.ID,
			&pet.Name,
			&pet.District,
			&pet.Reference,
			&pet.Lat,
			&pet.Lon,
			&pet.GeoCell,
			&pet.ImagePath,
			&blob,
			&pet.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan pet")
		}
		vec, err := blobToVector(blob)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode embedding for pet %d", pet.ID)
		}
		pet.Embedding = vec
		list = append(list, &pet)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate pets")
	}

	return list, nil
}
