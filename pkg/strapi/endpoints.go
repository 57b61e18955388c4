package strapi

import (
	"fmt"
	"strings"
)

// Collection base paths on the Strapi REST API.
const (
	articlesCollection   = "/api/articles"
	categoriesCollection = "/api/categories"
	authorsCollection    = "/api/authors"
	tagsCollection       = "/api/tags"
)

// query renders Strapi's bracketed query syntax in insertion order.
// Values are written verbatim; nothing is escaped.
type query struct {
	path   string
	params []string
}

func newQuery(path string) *query {
	return &query{path: path}
}

func (q *query) filterEq(field, value string) *query {
	q.params = append(q.params, fmt.Sprintf("filters[%s][$eq]=%s", field, value))
	return q
}

func (q *query) fields(names ...string) *query {
	for i, name := range names {
		q.params = append(q.params, fmt.Sprintf("fields[%d]=%s", i, name))
	}
	return q
}

func (q *query) populateFields(relation string, names ...string) *query {
	for i, name := range names {
		q.params = append(q.params, fmt.Sprintf("populate[%s][fields][%d]=%s", relation, i, name))
	}
	return q
}

func (q *query) populateAll(relation string) *query {
	q.params = append(q.params, fmt.Sprintf("populate[%s]=*", relation))
	return q
}

func (q *query) String() string {
	if len(q.params) == 0 {
		return q.path
	}
	return q.path + "?" + strings.Join(q.params, "&")
}

// populateArticleRelations adds the minimal projection of every article relation.
func populateArticleRelations(q *query) *query {
	return q.
		populateFields("featured_image", "url").
		populateFields("author", "name", "slug").
		populateFields("category", "name", "slug").
		populateFields("tags", "name", "slug")
}

var (
	// ArticlesPath lists articles with only the fields a listing page needs.
	ArticlesPath = populateArticleRelations(newQuery(articlesCollection)).
		fields("title", "slug", "summary", "publishedAt", "status").
		String()

	// CategoriesPath lists category names and slugs.
	CategoriesPath = newQuery(categoriesCollection).fields("name", "slug").String()

	// AuthorsPath lists authors with their profile image URL.
	AuthorsPath = newQuery(authorsCollection).
		fields("name", "slug").
		populateFields("profile_image", "url").
		String()

	// TagsPath lists tag names and slugs.
	TagsPath = newQuery(tagsCollection).fields("name", "slug").String()
)

// ArticlePath selects a single article by slug with its full body, SEO
// fields and fully populated content blocks. The slug is not validated.
func ArticlePath(slug string) string {
	q := newQuery(articlesCollection).filterEq("slug", slug)
	return populateArticleRelations(q).
		populateAll("blocks").
		fields("title", "slug", "summary", "body", "seo_title", "meta_description", "publishedAt", "status").
		String()
}
