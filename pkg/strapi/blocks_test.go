package strapi

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeBlocksDispatchesOnComponent(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"__component": "shared.rich-text", "id": 1, "body": "<p>Intro</p>"}`),
		json.RawMessage(`{"__component": "shared.media", "id": 2, "file": {"data": {"id": 4, "attributes": {"url": "/uploads/a.png"}}}}`),
		json.RawMessage(`{"__component": "shared.quote", "id": 3, "title": "Ada", "body": "Quote me"}`),
		json.RawMessage(`{"__component": "shared.slider", "id": 4, "files": {"data": [{"id": 5, "attributes": {"url": "/uploads/b.png"}}, {"id": 6, "attributes": {"url": "https://cdn.example.com/c.png"}}]}}`),
		json.RawMessage(`{"__component": "shared.video-embed", "id": 5, "url": "https://video.example.com"}`),
	}

	blocks := decodeBlocks(raws)
	if len(blocks) != len(raws) {
		t.Fatalf("expected %d blocks, got %d", len(raws), len(blocks))
	}

	rich, ok := blocks[0].(RichTextBlock)
	if !ok || rich.Body != "<p>Intro</p>" || rich.ID != 1 {
		t.Fatalf("blocks[0] = %#v", blocks[0])
	}
	if rich.PlainText() != "Intro" {
		t.Fatalf("PlainText = %q", rich.PlainText())
	}

	media, ok := blocks[1].(MediaBlock)
	if !ok || media.File == nil || media.File.URL != "/uploads/a.png" {
		t.Fatalf("blocks[1] = %#v", blocks[1])
	}

	quote, ok := blocks[2].(QuoteBlock)
	if !ok || quote.Title != "Ada" || quote.Body != "Quote me" {
		t.Fatalf("blocks[2] = %#v", blocks[2])
	}

	slider, ok := blocks[3].(SliderBlock)
	if !ok || len(slider.Files) != 2 || slider.Files[1].URL != "https://cdn.example.com/c.png" {
		t.Fatalf("blocks[3] = %#v", blocks[3])
	}

	unknown, ok := blocks[4].(UnknownBlock)
	if !ok || unknown.Component() != "shared.video-embed" {
		t.Fatalf("blocks[4] = %#v", blocks[4])
	}
	if !strings.Contains(string(unknown.Raw), "video.example.com") {
		t.Fatalf("unknown block lost its payload: %s", unknown.Raw)
	}
}

func TestDecodeBlockFallsBackOnMalformedPayload(t *testing.T) {
	b := decodeBlock(json.RawMessage(`{"__component": "shared.rich-text", "body": 42}`))
	unknown, ok := b.(UnknownBlock)
	if !ok {
		t.Fatalf("expected UnknownBlock, got %T", b)
	}
	if unknown.Component() != ComponentRichText {
		t.Fatalf("Component = %q", unknown.Component())
	}

	if _, ok := decodeBlock(json.RawMessage(`"not an object"`)).(UnknownBlock); !ok {
		t.Fatalf("expected UnknownBlock for non-object payload")
	}
}

func TestMediaBlockWithoutFile(t *testing.T) {
	b := decodeBlock(json.RawMessage(`{"__component": "shared.media", "id": 9, "file": {"data": null}}`))
	media, ok := b.(MediaBlock)
	if !ok || media.File != nil {
		t.Fatalf("expected media block with nil file, got %#v", b)
	}
}

func TestBlocksMarshalWithComponent(t *testing.T) {
	blocks := []Block{
		RichTextBlock{ID: 1, Body: "text"},
		MediaBlock{ID: 2, File: &Image{URL: "/a.png"}},
		UnknownBlock{Name: "shared.custom", Raw: json.RawMessage(`{"__component":"shared.custom","x":1}`)},
	}

	raw, err := json.Marshal(blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0]["__component"] != ComponentRichText || decoded[0]["body"] != "text" {
		t.Fatalf("rich text encoded as %v", decoded[0])
	}
	file, _ := decoded[1]["file"].(map[string]any)
	if decoded[1]["__component"] != ComponentMedia || file["url"] != "/a.png" {
		t.Fatalf("media encoded as %v", decoded[1])
	}
	if decoded[2]["__component"] != "shared.custom" || decoded[2]["x"] != float64(1) {
		t.Fatalf("unknown encoded as %v", decoded[2])
	}
}

func TestTransformArticleDecodesBlocks(t *testing.T) {
	e := decodeArticleEntry(t, `{"id": 1, "attributes": {"blocks": [
		{"__component": "shared.quote", "id": 1, "body": "q"}
	]}}`)

	a := transformArticle(e)
	if len(a.Blocks) != 1 || a.Blocks[0].Component() != ComponentQuote {
		t.Fatalf("Blocks = %#v", a.Blocks)
	}
}
