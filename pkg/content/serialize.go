package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SpanRecord is the persisted form of a Span. Pointer fields distinguish a
// missing value from a zero value when decoding.
type SpanRecord struct {
	Text       string  `json:"text"`
	FontFamily *string `json:"font_family,omitempty"`
	FontSize   *int    `json:"font_size,omitempty"`
	Bold       bool    `json:"bold"`
	Italic     bool    `json:"italic"`
	Underline  bool    `json:"underline"`
	Highlight  bool    `json:"highlight"`
	Color      *string `json:"color"`
}

// BlockRecord is the persisted form of a Block.
type BlockRecord struct {
	Alignment *int         `json:"alignment,omitempty"`
	Spans     []SpanRecord `json:"spans"`
}

// Serialize converts the content into its persisted record form. Every
// recognized field is written; an unset color is written as null.
func (c Content) Serialize() []BlockRecord {
	records := make([]BlockRecord, 0, len(c))
	for _, b := range c {
		align := int(b.Alignment)
		if align == 0 {
			align = int(AlignLeft)
		}
		rec := BlockRecord{
			Alignment: &align,
			Spans:     make([]SpanRecord, 0, len(b.Spans)),
		}
		for _, s := range b.Spans {
			family := s.FontFamily
			size := s.FontSize
			sr := SpanRecord{
				Text:       s.Text,
				FontFamily: &family,
				FontSize:   &size,
				Bold:       s.Bold,
				Italic:     s.Italic,
				Underline:  s.Underline,
				Highlight:  s.Highlight,
			}
			if v, ok := s.Color.Value(); ok {
				sr.Color = &v
			}
			rec.Spans = append(rec.Spans, sr)
		}
		records = append(records, rec)
	}
	return records
}

// Deserialize rebuilds content from records. Missing fields fall back to
// left alignment, the default font family and size, no styling and no color.
func Deserialize(records []BlockRecord) Content {
	if records == nil {
		return nil
	}
	c := make(Content, 0, len(records))
	for _, rec := range records {
		b := Block{Alignment: AlignLeft}
		if rec.Alignment != nil {
			b.Alignment = NormalizeAlignment(*rec.Alignment)
		}
		if len(rec.Spans) > 0 {
			b.Spans = make([]Span, 0, len(rec.Spans))
		}
		for _, sr := range rec.Spans {
			b.Spans = append(b.Spans, sr.span())
		}
		c = append(c, b)
	}
	return c
}

func (sr SpanRecord) span() Span {
	s := Span{
		Text:       sr.Text,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		Bold:       sr.Bold,
		Italic:     sr.Italic,
		Underline:  sr.Underline,
		Highlight:  sr.Highlight,
	}
	if sr.FontFamily != nil && *sr.FontFamily != "" {
		s.FontFamily = *sr.FontFamily
	}
	if sr.FontSize != nil && *sr.FontSize > 0 {
		s.FontSize = *sr.FontSize
	}
	if sr.Color != nil {
		s.Color = NewColor(*sr.Color)
	}
	return s
}

// MarshalJSON writes the serialized record form. A nil content is written
// as an empty list.
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Serialize())
}

// legacyBlock covers the flat block shape written by early project files,
// where span fields sit directly on the block instead of in a spans list.
type legacyBlock struct {
	SpanRecord
	Alignment *int          `json:"alignment,omitempty"`
	Spans     *[]SpanRecord `json:"spans"`
}

// UnmarshalJSON accepts the record list produced by MarshalJSON, a bare
// string (treated as plain text) and lists of flat legacy blocks.
func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode text content: %w", err)
		}
		*c = FromPlainText(text)
		return nil
	}

	var raw []legacyBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode content blocks: %w", err)
	}

	records := make([]BlockRecord, 0, len(raw))
	for _, lb := range raw {
		rec := BlockRecord{Alignment: lb.Alignment}
		switch {
		case lb.Spans != nil:
			rec.Spans = *lb.Spans
		case lb.Text != "" || lb.FontFamily != nil || lb.FontSize != nil:
			rec.Spans = []SpanRecord{lb.SpanRecord}
		}
		records = append(records, rec)
	}
	*c = Deserialize(records)
	if *c == nil {
		*c = Content{}
	}
	return nil
}
