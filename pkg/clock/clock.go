// Package clock fornece a fonte de "agora" injetável usada pelos casos de uso.
//
// Nenhum cálculo de ciclo de cobrança ou de janela mensal deve chamar
// time.Now() diretamente: recebe um Clock e, nos testes, um relógio fixo.
package clock

import "time"

// Clock devolve o instante atual
type Clock interface {
	Now() time.Time
}

// RealClock usa o horário do sistema. Só deve ser criado em cmd/.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock sempre devolve o mesmo instante
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// FuncClock adapta uma função para Clock (útil para avançar o tempo em testes)
type FuncClock func() time.Time

func (f FuncClock) Now() time.Time {
	return f()
}

func NewReal() Clock {
	return RealClock{}
}

func NewFixed(t time.Time) Clock {
	return FixedClock{T: t}
}

func NewFunc(f func() time.Time) Clock {
	return FuncClock(f)
}
