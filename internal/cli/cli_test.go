package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-content/internal/config"
	"github.com/samvad-hq/samvad-content/pkg/strapi"
)

// fakeAPI serves canned content.
type fakeAPI struct {
	articles []strapi.Article
	full     map[string]strapi.Article
	err      error
}

func (f *fakeAPI) Articles(context.Context) ([]strapi.Article, error) { return f.articles, f.err }
func (f *fakeAPI) Article(_ context.Context, slug string) (strapi.Article, bool, error) {
	if f.err != nil {
		return strapi.Article{}, false, f.err
	}
	a, ok := f.full[slug]
	return a, ok, nil
}
func (f *fakeAPI) Categories(context.Context) ([]strapi.Category, error) {
	return []strapi.Category{{Name: "News", Slug: "news"}}, f.err
}
func (f *fakeAPI) Authors(context.Context) ([]strapi.Author, error) {
	return []strapi.Author{{Name: "Asha", Slug: "asha", ProfileImage: &strapi.Image{URL: "/a.jpg"}}}, f.err
}
func (f *fakeAPI) Tags(context.Context) ([]strapi.Tag, error) {
	return []strapi.Tag{{Name: "Go", Slug: "go"}}, f.err
}
func (f *fakeAPI) ImageURL(img *strapi.Image) string {
	return strapi.ResolveImageURL("http://cms.test", img)
}

func newFakeAPI() *fakeAPI {
	hello := strapi.Article{
		ID:          1,
		Title:       "Hello",
		Slug:        "hello",
		Body:        "<p>Hello body</p>",
		PublishedAt: "2024-01-05T10:00:00.000Z",
		Status:      strapi.StatusPublished,
		Category:    &strapi.Category{Name: "News", Slug: "news"},
		Tags:        []strapi.Tag{{Name: "Go", Slug: "go"}},
		Blocks:      []strapi.Block{strapi.QuoteBlock{Body: "q"}},
	}
	draft := strapi.Article{ID: 2, Title: "WIP", Slug: "wip", Status: strapi.StatusDraft, Tags: []strapi.Tag{}}
	return &fakeAPI{
		articles: []strapi.Article{hello, draft},
		full:     map[string]strapi.Article{"hello": hello, "wip": draft},
	}
}

func execute(t *testing.T, api strapi.ContentAPI, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{StrapiURL: "http://cms.test", ExportFormat: "yaml"}
	}
	root := NewRootCmd(func() (*config.Config, strapi.ContentAPI, error) { return cfg, api, nil })
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestArticlesTable(t *testing.T) {
	out, err := execute(t, newFakeAPI(), nil, "articles")
	if err != nil {
		t.Fatalf("articles failed: %v", err)
	}
	for _, want := range []string{"hello", "wip", "January 5, 2024", "News"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestArticlesPublishedJSON(t *testing.T) {
	out, err := execute(t, newFakeAPI(), nil, "articles", "--published", "--json")
	if err != nil {
		t.Fatalf("articles --published --json failed: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0]["slug"] != "hello" {
		t.Fatalf("unexpected articles %v", got)
	}
}

func TestArticleShowsDetails(t *testing.T) {
	out, err := execute(t, newFakeAPI(), nil, "article", "hello")
	if err != nil {
		t.Fatalf("article failed: %v", err)
	}
	for _, want := range []string{"Hello body", "shared.quote", "Hello"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestArticleNotFoundFails(t *testing.T) {
	_, err := execute(t, newFakeAPI(), nil, "article", "missing")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestArticleRequiresSlug(t *testing.T) {
	if _, err := execute(t, newFakeAPI(), nil, "article"); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestTaxonomyCommands(t *testing.T) {
	cases := map[string]string{
		"categories": "news",
		"authors":    "http://cms.test/a.jpg",
		"tags":       "go",
	}
	for cmd, want := range cases {
		out, err := execute(t, newFakeAPI(), nil, cmd)
		if err != nil {
			t.Fatalf("%s failed: %v", cmd, err)
		}
		if !strings.Contains(out, want) {
			t.Errorf("%s output missing %q:\n%s", cmd, want, out)
		}
	}
}

func TestCommandsSurfaceAPIErrors(t *testing.T) {
	api := &fakeAPI{err: &strapi.APIError{StatusCode: 500, Status: "Internal Server Error"}}
	_, err := execute(t, api, nil, "tags")
	var apiErr *strapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestExportWritesPublishedArticles(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{StrapiURL: "http://cms.test", ExportDir: filepath.Join(dir, "unused"), ExportFormat: "yaml"}

	out, err := execute(t, newFakeAPI(), cfg, "export", "--dir", dir, "--format", "toml")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "hello.md")) {
		t.Fatalf("export did not report written file:\n%s", out)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "hello.md"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(raw), "+++\n") {
		t.Fatalf("expected toml front matter:\n%s", raw)
	}
	if _, err := os.Stat(filepath.Join(dir, "wip.md")); !os.IsNotExist(err) {
		t.Fatalf("drafts should not be exported without --drafts")
	}
}

func TestExportDefaultsFromConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	cfg := &config.Config{StrapiURL: "http://cms.test", ExportDir: dir, ExportFormat: "yaml"}

	if _, err := execute(t, newFakeAPI(), cfg, "export", "--drafts"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	for _, name := range []string{"hello.md", "wip.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestLoaderErrorsStopCommands(t *testing.T) {
	root := NewRootCmd(func() (*config.Config, strapi.ContentAPI, error) {
		return nil, nil, errors.New("bad config")
	})
	root.SetArgs([]string{"tags"})
	root.SetOut(new(bytes.Buffer))
	if err := root.Execute(); err == nil || err.Error() != "bad config" {
		t.Fatalf("expected loader error, got %v", err)
	}
}
