package workspace

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shokunin/langotango/pkg/content"
)

func TestMarshalRoundTrip(t *testing.T) {
	w, chapter, doc1, doc2 := newTestWorkspace(t)
	span := content.NewSpan("¡Hola!")
	span.Italic = true
	span.Color = content.NewColor("#336699")
	doc1.Commit(content.Content{{Alignment: content.AlignJustify, Spans: []content.Span{span}}})
	doc1.Commit(content.FromPlainText("second draft"))
	doc1.Undo()
	_, err := w.CreateDocument(w.Research, "Vocab")
	require.NoError(t, err)
	require.NoError(t, w.MoveToTrash(doc2, w.Root))
	w.Current = doc1

	data, err := Marshal(w)
	require.NoError(t, err)

	loaded, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, w.Root.Name, loaded.Root.Name)
	require.Len(t, loaded.Root.Items, 1)
	loadedChapter, ok := loaded.Root.Items[0].(*Folder)
	require.True(t, ok)
	assert.Equal(t, chapter.ID, loadedChapter.ID)
	assert.Equal(t, chapter.Created.String(), loadedChapter.Created.String())

	loadedDoc, ok := loadedChapter.Items[0].(*Document)
	require.True(t, ok)
	assert.Equal(t, doc1.Name, loadedDoc.Name)
	assert.True(t, doc1.Content.Equal(loadedDoc.Content))
	assertStacksEqual(t, doc1.History.UndoStack(), loadedDoc.History.UndoStack())
	assertStacksEqual(t, doc1.History.RedoStack(), loadedDoc.History.RedoStack())

	require.Len(t, loaded.Research.Items, 1)
	require.Len(t, loaded.Trash.Items, 1)
	assert.Equal(t, doc2.ID, loaded.Trash.Items[0].ItemID())

	assert.Same(t, loadedDoc, loaded.Current, "current document should point into the tree")

	// Redo survives the reload.
	assert.True(t, loadedDoc.Redo())
	assert.Equal(t, "second draft", loadedDoc.PlainText())
}

func TestMarshalLayout(t *testing.T) {
	w := New("Novel")
	_, err := w.CreateDocument(w.Root, "Hello")
	require.NoError(t, err)

	data, err := Marshal(w)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	for _, key := range []string{"root_folder", "research_folder", "trash_folder", "current_document"} {
		assert.Contains(t, top, key)
	}
	assert.Equal(t, "null", string(top["current_document"]))

	var root map[string]any
	require.NoError(t, json.Unmarshal(top["root_folder"], &root))
	assert.Equal(t, "folder", root["type"])
	items := root["items"].([]any)
	doc := items[0].(map[string]any)
	assert.Equal(t, "document", doc["type"])
	assert.Equal(t, "Hello.lango", doc["name"])
	for _, key := range []string{"content", "created", "modified", "undo_stack", "redo_stack"} {
		assert.Contains(t, doc, key)
	}
	assert.True(t, strings.HasPrefix(string(data), "{\n  \""), "expected two-space indentation")
}

const legacyWorkspace = `{
  "root_folder": {
    "name": "My Documents",
    "type": "folder",
    "created": "2024-03-01T10:00:00.123456",
    "modified": "2024-03-01T10:00:00.123456",
    "items": [
      {
        "name": "Hello.lango",
        "type": "document",
        "created": "2024-03-01T10:00:00",
        "modified": "2024-03-02T11:30:00.5",
        "content": [{"alignment": 1, "spans": [{"text": "It takes two to LangoTango!"}]}],
        "undo_stack": [[], [{"alignment": 1, "spans": [{"text": "It takes two to LangoTango!"}]}]],
        "redo_stack": []
      }
    ]
  },
  "current_document": {
    "name": "Hello.lango",
    "type": "document",
    "created": "2024-03-01T10:00:00",
    "modified": "2024-03-02T11:30:00.5",
    "content": [{"alignment": 1, "spans": [{"text": "It takes two to LangoTango!"}]}]
  }
}`

func TestUnmarshalBackwardCompatible(t *testing.T) {
	w, err := Unmarshal([]byte(legacyWorkspace))
	require.NoError(t, err)

	require.NotNil(t, w.Research)
	assert.Equal(t, "Research", w.Research.Name)
	assert.Empty(t, w.Research.Items)
	require.NotNil(t, w.Trash)
	assert.Equal(t, "Trash", w.Trash.Name)

	require.Len(t, w.Root.Items, 1)
	doc := w.Root.Items[0].(*Document)
	assert.NotEmpty(t, doc.ID, "missing ids are generated")
	assert.Equal(t, "It takes two to LangoTango!", doc.PlainText())
	assert.Equal(t, 2024, doc.Created.Year())
	assert.Equal(t, 30, doc.Modified.Minute())
	assert.True(t, doc.History.CanUndo())

	assert.Same(t, doc, w.Current, "current document is matched by name, creation time and content")
}

func TestUnmarshalFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"not an object", `[]`, "$"},
		{"missing root", `{"research_folder": null}`, "root_folder"},
		{"missing type", `{"root_folder": {"name": "r", "items": []}}`, "root_folder.type"},
		{"unknown type", `{"root_folder": {"name": "r", "items": [{"name": "x", "type": "link"}], "type": "folder"}}`, "root_folder.items[0].type"},
		{"missing name", `{"root_folder": {"items": [], "type": "folder"}}`, "root_folder.name"},
		{"missing items", `{"root_folder": {"name": "r", "type": "folder"}}`, "root_folder.items"},
		{"missing content", `{"root_folder": {"name": "r", "type": "folder", "items": [{"name": "d", "type": "document"}]}}`, "root_folder.items[0].content"},
		{"bad timestamp", `{"root_folder": {"name": "r", "type": "folder", "items": [], "created": "yesterday"}}`, "root_folder.created"},
		{"bad trash", `{"root_folder": {"name": "r", "type": "folder", "items": []}, "trash_folder": {"name": "Trash", "type": "folder"}}`, "trash_folder.items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Unmarshal([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, w)
			assert.True(t, errors.Is(err, ErrFormat))
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantPath, fe.Path)
		})
	}
}

func TestUnmarshalDocument(t *testing.T) {
	data := []byte(`{"name": "Solo.lango", "type": "document", "content": "plain text body"}`)
	require.True(t, IsDocumentFile(data))
	require.False(t, IsDocumentFile([]byte(legacyWorkspace)))

	w, err := UnmarshalDocument(data)
	require.NoError(t, err)
	require.Len(t, w.Root.Items, 1)
	assert.Same(t, w.Root.Items[0], Item(w.Current))
	assert.Equal(t, "plain text body", w.Current.PlainText())
}

func TestTimestampLayout(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-06T07:08:09.123456")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06T07:08:09.123456", ts.String())

	ts, err = ParseTimestamp("2024-05-06T07:08:09Z")
	require.NoError(t, err)
	assert.Equal(t, 9, ts.Second())

	_, err = ParseTimestamp("May 6")
	assert.Error(t, err)
}
