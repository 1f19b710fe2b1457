package postgres

import "time"

// dateOrZero convierte una fecha nullable en time.Time (cero si es NULL).
func dateOrZero(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
