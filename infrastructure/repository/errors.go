package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// undefined_table: a tabela ainda não existe (implantações antigas)
const undefinedTableCode = pq.ErrorCode("42P01")

// ErrCollectionUnavailable indica que a coleção não pode ser consultada
var ErrCollectionUnavailable = errors.New("coleção indisponível")

func wrapQueryError(err error, collection string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == undefinedTableCode {
			return fmt.Errorf("%w: %s (código: %s)", ErrCollectionUnavailable, collection, pqErr.Code)
		}
		return fmt.Errorf("erro no banco de dados em %s: %w (código: %s)", collection, pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query em %s: %w", collection, err)
}
