package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-portal/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

// birth_date es DATE; viaja como texto YYYY-MM-DD para no pelear con zonas horarias.
const animalColumns = `
	id, created_at, client_id,
	name, species, breed, sex,
	to_char(birth_date, 'YYYY-MM-DD'), photo_url, notes`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal (
			id, created_at, client_id,
			name, species, breed, sex,
			birth_date, photo_url, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8::date,$9,$10)
	`,
		a.ID, a.CreatedAt, a.ClientID,
		a.Name, a.Species, a.Breed, a.Sex,
		a.BirthDate, a.PhotoURL, a.Notes,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal
		SET
			name = $2,
			species = $3,
			breed = $4,
			sex = $5,
			birth_date = $6::date,
			photo_url = $7,
			notes = $8
		WHERE id = $1
	`,
		a.ID,
		a.Name, a.Species, a.Breed, a.Sex,
		a.BirthDate, a.PhotoURL, a.Notes,
	)
	return affectedOne(res, err, animals.ErrNotFound)
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animal WHERE id = $1`, id)

	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) ListByClient(ctx context.Context, clientID string) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animal
		WHERE client_id = $1
		ORDER BY created_at ASC
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var a animals.Animal
	err := s.Scan(
		&a.ID, &a.CreatedAt, &a.ClientID,
		&a.Name, &a.Species, &a.Breed, &a.Sex,
		&a.BirthDate, &a.PhotoURL, &a.Notes,
	)
	return a, err
}
