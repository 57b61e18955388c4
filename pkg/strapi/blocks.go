package strapi

import (
	"encoding/json"

	"github.com/samvad-hq/samvad-content/pkg/richtext"
)

// Dynamic zone components understood by the adapter.
const (
	ComponentRichText = "shared.rich-text"
	ComponentMedia    = "shared.media"
	ComponentQuote    = "shared.quote"
	ComponentSlider   = "shared.slider"
)

// Block is one entry of an article's dynamic zone. Concrete types are
// RichTextBlock, MediaBlock, QuoteBlock, SliderBlock and UnknownBlock.
type Block interface {
	Component() string
}

type RichTextBlock struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

func (RichTextBlock) Component() string { return ComponentRichText }

// PlainText returns the block body with markup removed.
func (b RichTextBlock) PlainText() string { return richtext.PlainText(b.Body) }

func (b RichTextBlock) MarshalJSON() ([]byte, error) {
	type plain RichTextBlock
	return json.Marshal(struct {
		Component string `json:"__component"`
		plain
	}{b.Component(), plain(b)})
}

type MediaBlock struct {
	ID   int64  `json:"id"`
	File *Image `json:"file,omitempty"`
}

func (MediaBlock) Component() string { return ComponentMedia }

func (b MediaBlock) MarshalJSON() ([]byte, error) {
	type plain MediaBlock
	return json.Marshal(struct {
		Component string `json:"__component"`
		plain
	}{b.Component(), plain(b)})
}

type QuoteBlock struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

func (QuoteBlock) Component() string { return ComponentQuote }

func (b QuoteBlock) MarshalJSON() ([]byte, error) {
	type plain QuoteBlock
	return json.Marshal(struct {
		Component string `json:"__component"`
		plain
	}{b.Component(), plain(b)})
}

type SliderBlock struct {
	ID    int64   `json:"id"`
	Files []Image `json:"files"`
}

func (SliderBlock) Component() string { return ComponentSlider }

func (b SliderBlock) MarshalJSON() ([]byte, error) {
	type plain SliderBlock
	return json.Marshal(struct {
		Component string `json:"__component"`
		plain
	}{b.Component(), plain(b)})
}

// UnknownBlock keeps components the adapter has no type for, and known
// components whose payload did not decode, as raw JSON.
type UnknownBlock struct {
	Name string
	Raw  json.RawMessage
}

func (b UnknownBlock) Component() string { return b.Name }

func (b UnknownBlock) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	return json.Marshal(map[string]string{"__component": b.Name})
}

type rawMediaBlock struct {
	ID   int64            `json:"id"`
	File *relation[Image] `json:"file"`
}

type rawSliderBlock struct {
	ID    int64                `json:"id"`
	Files *relationList[Image] `json:"files"`
}

func decodeBlocks(raws []json.RawMessage) []Block {
	if raws == nil {
		return nil
	}
	out := make([]Block, 0, len(raws))
	for _, raw := range raws {
		out = append(out, decodeBlock(raw))
	}
	return out
}

// decodeBlock dispatches on the __component discriminator.
func decodeBlock(raw json.RawMessage) Block {
	var head struct {
		Component string `json:"__component"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return UnknownBlock{Raw: raw}
	}
	unknown := UnknownBlock{Name: head.Component, Raw: raw}

	switch head.Component {
	case ComponentRichText:
		var b RichTextBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return unknown
		}
		return b
	case ComponentQuote:
		var b QuoteBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return unknown
		}
		return b
	case ComponentMedia:
		var b rawMediaBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return unknown
		}
		return MediaBlock{ID: b.ID, File: b.File.value()}
	case ComponentSlider:
		var b rawSliderBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return unknown
		}
		return SliderBlock{ID: b.ID, Files: b.Files.values()}
	default:
		return unknown
	}
}
