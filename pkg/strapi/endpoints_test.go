package strapi

import (
	"strings"
	"testing"
)

func TestCollectionPaths(t *testing.T) {
	cases := map[string]struct {
		got  string
		want string
	}{
		"articles": {
			got:  ArticlesPath,
			want: "/api/articles?populate[featured_image][fields][0]=url&populate[author][fields][0]=name&populate[author][fields][1]=slug&populate[category][fields][0]=name&populate[category][fields][1]=slug&populate[tags][fields][0]=name&populate[tags][fields][1]=slug&fields[0]=title&fields[1]=slug&fields[2]=summary&fields[3]=publishedAt&fields[4]=status",
		},
		"categories": {
			got:  CategoriesPath,
			want: "/api/categories?fields[0]=name&fields[1]=slug",
		},
		"authors": {
			got:  AuthorsPath,
			want: "/api/authors?fields[0]=name&fields[1]=slug&populate[profile_image][fields][0]=url",
		},
		"tags": {
			got:  TagsPath,
			want: "/api/tags?fields[0]=name&fields[1]=slug",
		},
	}

	for name, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s path\n got: %s\nwant: %s", name, tc.got, tc.want)
		}
	}
}

func TestArticlePath(t *testing.T) {
	got := ArticlePath("hello-world")
	want := "/api/articles?filters[slug][$eq]=hello-world&populate[featured_image][fields][0]=url&populate[author][fields][0]=name&populate[author][fields][1]=slug&populate[category][fields][0]=name&populate[category][fields][1]=slug&populate[tags][fields][0]=name&populate[tags][fields][1]=slug&populate[blocks]=*&fields[0]=title&fields[1]=slug&fields[2]=summary&fields[3]=body&fields[4]=seo_title&fields[5]=meta_description&fields[6]=publishedAt&fields[7]=status"
	if got != want {
		t.Fatalf("ArticlePath\n got: %s\nwant: %s", got, want)
	}
}

func TestArticlePathPassesSlugVerbatim(t *testing.T) {
	for _, slug := range []string{"", "a b", "x&y=z"} {
		got := ArticlePath(slug)
		if !strings.Contains(got, "filters[slug][$eq]="+slug+"&") {
			t.Errorf("slug %q not passed verbatim: %s", slug, got)
		}
		if !strings.Contains(got, "populate[blocks]=*") {
			t.Errorf("missing blocks population for slug %q", slug)
		}
	}
}

func TestQueryWithoutParams(t *testing.T) {
	if got := newQuery("/api/pages").String(); got != "/api/pages" {
		t.Fatalf("expected bare path, got %q", got)
	}
}
