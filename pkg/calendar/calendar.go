// Package calendar concentra a aritmética de datas usada pelos cálculos
// mensais e pelos ciclos de cobrança. Todas as funções preservam o fuso
// horário (time.Location) da data recebida.
package calendar

import (
	"fmt"
	"time"
)

// PeriodLayout é o formato "YYYY-MM" usado para identificar um mês
const PeriodLayout = "2006-01"

// DaysInMonth retorna a quantidade de dias do mês (considera anos bissextos)
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayToMonth limita o dia ao último dia existente no mês.
// Ex.: dia 31 em fevereiro de 2026 vira 28, dia 31 em abril vira 30.
func ClampDayToMonth(day, year int, month time.Month) int {
	last := DaysInMonth(year, month)
	if day > last {
		return last
	}
	return day
}

// MonthStart retorna o primeiro instante (meia-noite do dia 1) do mês da data
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd retorna o último instante do mês da data, 23:59:59.999
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Millisecond)
}

// AddMonths soma n meses (n pode ser negativo) limitando o dia ao tamanho do
// mês de destino: 31/01 + 1 mês = 28/02 (ou 29 em ano bissexto).
// time.AddDate normalizaria para março, por isso não é usado aqui.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := ClampDayToMonth(t.Day(), first.Year(), first.Month())

	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DueDateIn retorna a data de vencimento (meia-noite) do dia de cobrança no
// mês informado, já limitada ao tamanho do mês
func DueDateIn(year int, month time.Month, billingDay int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	day := ClampDayToMonth(billingDay, first.Year(), first.Month())

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

// StartOfDay zera o horário mantendo o fuso
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TrailingMonths retorna o início dos últimos n meses, do mais recente
// (mês de "now") para o mais antigo
func TrailingMonths(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}

	current := MonthStart(now)
	months := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, current.AddDate(0, -i, 0))
	}

	return months
}

// MonthsBetween retorna o início de cada mês entre from e to (inclusive),
// do mais recente para o mais antigo. Retorna vazio se from > to.
func MonthsBetween(from, to time.Time) []time.Time {
	start := MonthStart(from)
	end := MonthStart(to)

	months := []time.Time{}
	for current := end; !current.Before(start); current = current.AddDate(0, -1, 0) {
		months = append(months, current)
	}

	return months
}

// FormatPeriod formata o mês como "YYYY-MM"
func FormatPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}

// ParsePeriod interpreta "YYYY-MM" no fuso informado e retorna o início do mês
func ParsePeriod(period string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(PeriodLayout, period, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("período inválido %q, use o formato YYYY-MM: %w", period, err)
	}

	return MonthStart(t), nil
}
