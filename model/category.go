package model

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex" json:"name"`
	Desc      string    `json:"desc"`
	CreatedAt time.Time `json:"created_at"`
}
