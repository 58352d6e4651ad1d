package domain

import "time"

// Repository is the subset of a GitHub repository listing the site renders.
// The list arrives sorted by creation time, newest first, and is never re-sorted.
type Repository struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Language    *string   `json:"language"`
	Homepage    *string   `json:"homepage"`
	CreatedAt   time.Time `json:"created_at"`
	HTMLURL     string    `json:"html_url"`
}

// HomepageURL returns the homepage, or "" when the repository has none.
func (r Repository) HomepageURL() string {
	if r.Homepage == nil {
		return ""
	}
	return *r.Homepage
}

// DescriptionOr returns the description or fallback when absent or empty.
func (r Repository) DescriptionOr(fallback string) string {
	if r.Description == nil || *r.Description == "" {
		return fallback
	}
	return *r.Description
}

// LanguageOr returns the primary language or fallback when GitHub reports none.
func (r Repository) LanguageOr(fallback string) string {
	if r.Language == nil || *r.Language == "" {
		return fallback
	}
	return *r.Language
}
