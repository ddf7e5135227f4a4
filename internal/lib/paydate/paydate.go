// Package paydate вычисляет дату следующего списания по дню платежа
// и расчётному периоду подписки.
package paydate

import "time"

// Поддерживаемые расчётные периоды.
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Next возвращает дату следующего списания.
//
// Если день платежа в текущем месяце уже прошёл, дата переносится на
// следующий месяц, иначе остаётся в текущем. Для годового периода к
// результату добавляется год. День, превышающий длину целевого месяца,
// прижимается к его последнему дню (31-е в апреле списывается 30-го).
func Next(now time.Time, paymentDay int, billingCycle string) time.Time {
	year, month, _ := now.Date()
	if paymentDay < now.Day() {
		month++
	}
	next := time.Date(year, month, clampDay(year, month, paymentDay), 0, 0, 0, 0, now.Location())

	if billingCycle == CycleYearly {
		y, m, _ := next.Date()
		next = time.Date(y+1, m, clampDay(y+1, m, paymentDay), 0, 0, 0, 0, now.Location())
	}
	return next
}

// clampDay прижимает день к последнему дню месяца.
// time.Date нормализует month > 12, поэтому нулевой день
// следующего месяца всегда даёт длину целевого.
func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}
