package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем лидерборда
type CacheRepository interface {
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
}
