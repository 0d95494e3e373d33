package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateCounter is a durable keyed counter with a fixed window.
// All changes are single guarded statements so several server instances can share it.
type RateCounter struct {
	Key          string `gorm:"type:varchar(190);primaryKey"`
	Count        int    `gorm:"not null"`
	WindowEndsAt int64  `gorm:"not null"`
}

// HitRateCounter records one hit for key and reports whether it is within limit hits per window (seconds)
func HitRateCounter(db *gorm.DB, key string, limit int, window int64, now int64) (bool, error) {
	if limit <= 0 {
		return false, nil
	}
	for attempt := 0; attempt < 2; attempt++ {
		// Inside the current window
		result := db.Model(&RateCounter{}).
			Where("`key` = ? AND window_ends_at > ? AND count < ?", key, now, limit).
			UpdateColumn("count", gorm.Expr("count + 1"))
		if result.Error != nil {
			return false, result.Error
		}
		if result.RowsAffected == 1 {
			return true, nil
		}
		// Window is over, start a new one
		result = db.Model(&RateCounter{}).
			Where("`key` = ? AND window_ends_at <= ?", key, now).
			UpdateColumns(map[string]interface{}{"count": 1, "window_ends_at": now + window})
		if result.Error != nil {
			return false, result.Error
		}
		if result.RowsAffected == 1 {
			return true, nil
		}
		// First hit ever
		result = db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&RateCounter{Key: key, Count: 1, WindowEndsAt: now + window})
		if result.Error != nil {
			return false, result.Error
		}
		if result.RowsAffected == 1 {
			return true, nil
		}
		// Either the limit is reached or another instance created the row in between, look again once
	}
	return false, nil
}
