package model

import "time"

// お知らせ
type Announcement struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Content     string    `gorm:"type:varchar(2000);not null" json:"content"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	IsPublished bool      `gorm:"not null;default:false" json:"is_published"`
	PublishDate time.Time `gorm:"not null;index" json:"publish_date"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
