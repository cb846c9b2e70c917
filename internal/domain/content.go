package domain

import "time"

// Author is the public byline attached to posts.
type Author struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Slug      string `gorm:"size:160;uniqueIndex;not null"`
	Email     string `gorm:"size:255"`
	Bio       string `gorm:"type:text"`
	AvatarURL string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;not null"`
	Slug        string `gorm:"size:160;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Tag struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null"`
	Slug      string `gorm:"size:80;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Post is a blog article. Drafts have Published=false and are only reachable
// from the back-office or through a signed preview link.
type Post struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null"`
	Slug        string     `gorm:"size:280;uniqueIndex;not null"`
	Excerpt     string     `gorm:"type:text"`
	Content     string     `gorm:"type:text"`
	CoverImage  string     `gorm:"size:512"`
	Published   bool       `gorm:"index;not null;default:false"`
	Featured    bool       `gorm:"not null;default:false"`
	PublishedAt *time.Time `gorm:"index"`
	AuthorID    uint       `gorm:"index;not null"`
	Author      Author     `gorm:"constraint:OnDelete:RESTRICT"`
	CategoryID  *uint      `gorm:"index"`
	Category    *Category  `gorm:"constraint:OnDelete:SET NULL"`
	Tags        []Tag      `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SiteSettings is a single-row table holding site-wide presentation values.
type SiteSettings struct {
	ID           uint   `gorm:"primaryKey"`
	SiteName     string `gorm:"size:128;not null"`
	Description  string `gorm:"type:text"`
	LogoURL      string `gorm:"size:512"`
	FooterText   string `gorm:"size:512"`
	PostsPerPage int    `gorm:"not null;default:10"`
	UpdatedAt    time.Time
}

// SettingsID is the primary key of the only SiteSettings row.
const SettingsID uint = 1

// DefaultSettings returns the values used before an admin saves settings.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		ID:           SettingsID,
		SiteName:     "My Blog",
		PostsPerPage: 10,
	}
}

// PostFilter narrows post listings.
type PostFilter struct {
	Query        string
	Published    *bool
	CategorySlug string
	TagSlug      string
	AuthorSlug   string
	Page         int
	PerPage      int
}

// Offset returns the zero-based row offset for the filter's page.
func (f PostFilter) Offset() int {
	if f.Page <= 1 || f.PerPage <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PerPage
}
