package repository

import (
	"database/sql"
	"errors"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/lib/pq"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// translate maps driver errors onto the model sentinels services match on
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return model.ErrAlreadyExists
		case invalidTextRepresentation:
			// malformed uuid: no row can match it
			return model.ErrNotFound
		}
	}
	return err
}
