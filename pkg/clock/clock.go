package clock

import "time"

// Real текущее системное время
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed всегда возвращает одно и то же время (для тестов)
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
