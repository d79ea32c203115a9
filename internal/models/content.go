package models

import "time"

// Blog is an editorial article published on the platform site.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	BlogImage string    `gorm:"size:512" json:"blogImage,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Testimonial is a quote shown on the landing page. External submissions
// start unapproved and are gated by an admin before they become visible.
type Testimonial struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:255;not null" json:"firstName"`
	LastName     string    `gorm:"size:255;not null" json:"lastName"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Role         string    `gorm:"size:128" json:"role"`
	Company      string    `gorm:"size:255" json:"company"`
	ProfileImage string    `gorm:"size:512" json:"profileImage,omitempty"`
	IsExternal   bool      `gorm:"not null" json:"isExternal"`
	IsApproved   bool      `gorm:"not null;index" json:"isApproved"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SuccessStory highlights a past student's admission result.
type SuccessStory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Score      int       `gorm:"not null" json:"score"`
	University string    `gorm:"size:255;not null" json:"university"`
	Picture    string    `gorm:"size:512" json:"picture,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MediaAsset records a file pushed to the CDN so uploads stay auditable.
type MediaAsset struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FileName    string    `gorm:"size:255;not null" json:"fileName"`
	URL         string    `gorm:"size:512;not null" json:"url"`
	ContentType string    `gorm:"size:128;not null" json:"contentType"`
	SizeBytes   int64     `gorm:"not null" json:"sizeBytes"`
	Checksum    string    `gorm:"size:64;index" json:"checksum"`
	UploadedBy  *uint     `json:"uploadedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
