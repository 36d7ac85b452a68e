package summarizing

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidDateRange indica mês ausente ou intervalo invertido
	ErrInvalidDateRange = errors.New("intervalo de datas inválido")
	// ErrSourceUnavailable indica que uma coleção de origem não pôde ser consultada
	ErrSourceUnavailable = errors.New("fonte de dados indisponível")
)

// SourceError identifica qual coleção falhou. errors.Is funciona tanto para
// ErrSourceUnavailable quanto para o erro original do repositório.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSourceUnavailable, e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}
