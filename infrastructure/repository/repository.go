package repository

import (
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound é retornado por updates e deletes que não afetaram nenhuma linha.
// Buscas por ID retornam (nil, nil) quando o registro não existe.
var ErrNotFound = errors.New("registro não encontrado")

// psql é o builder do squirrel com placeholders $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// rowScanner abstrai *sql.Row e *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
