package strapi

// Status is the publishing state of an article.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

// Image is a media reference. URL may be relative to the CMS origin.
type Image struct {
	URL string `json:"url"`
}

// Author is a flattened author record.
type Author struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProfileImage *Image `json:"profile_image,omitempty"`
}

// Category is a flattened category record.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag is a flattened tag record.
type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Article is a flattened article record. Relations that the CMS did not
// return are nil; Tags is never nil.
type Article struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Summary         string    `json:"summary"`
	Body            string    `json:"body,omitempty"`
	SEOTitle        string    `json:"seo_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	FeaturedImage   *Image    `json:"featured_image,omitempty"`
	PublishedAt     string    `json:"publishedAt"`
	Status          Status    `json:"status"`
	Author          *Author   `json:"author,omitempty"`
	Category        *Category `json:"category,omitempty"`
	Tags            []Tag     `json:"tags"`
	Blocks          []Block   `json:"blocks,omitempty"`
}

// IsPublished reports whether the article is in published status.
func (a Article) IsPublished() bool {
	return a.Status == StatusPublished
}
