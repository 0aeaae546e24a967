package models

import (
	"strings"
	"time"
)

// Document is a single entry in the portfolio library. Exactly one
// stored file exists per record, located at FilePath.
type Document struct {
	ID               uint      `gorm:"primaryKey"`
	Title            string    `gorm:"size:200;not null"`
	Description      string    `gorm:"type:text"`
	Category         string    `gorm:"size:100;not null;index"`
	FilePath         string    `gorm:"size:500;not null"`
	OriginalFilename string    `gorm:"size:200;not null"`
	UploadDate       time.Time `gorm:"not null"`
	IsFeatured       bool      `gorm:"not null;default:false"`
	OrderIndex       int       `gorm:"not null;default:0"`
}

// FileExtension returns the lowercase extension of the original
// filename, without the dot. Empty when the name has none.
func (d *Document) FileExtension() string {
	idx := strings.LastIndex(d.OriginalFilename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(d.OriginalFilename[idx+1:])
}
