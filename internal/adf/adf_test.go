package adf

import (
	"strings"
	"testing"
)

func textNode(text string) map[string]interface{} {
	return map[string]interface{}{"type": "text", "text": text}
}

func node(nodeType string, children ...interface{}) map[string]interface{} {
	return map[string]interface{}{"type": nodeType, "content": children}
}

func doc(children ...interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "doc", "version": 1, "content": children}
}

func TestFlattenToText(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]interface{}
		want string
	}{
		{
			name: "single paragraph",
			doc:  doc(node("paragraph", textNode("Hello world"))),
			want: "Hello world",
		},
		{
			name: "heading and paragraph",
			doc: doc(
				node("heading", textNode("Title")),
				node("paragraph", textNode("Body text")),
			),
			want: "Title\nBody text",
		},
		{
			name: "bullet list",
			doc: doc(node("bulletList",
				node("listItem", node("paragraph", textNode("first"))),
				node("listItem", node("paragraph", textNode("second"))),
			)),
			want: "- first\n- second",
		},
		{
			name: "code block",
			doc:  doc(node("codeBlock", textNode("x := 1"))),
			want: "x := 1",
		},
		{
			name: "hard break",
			doc:  doc(node("paragraph", textNode("line one"), map[string]interface{}{"type": "hardBreak"}, textNode("line two"))),
			want: "line one\nline two",
		},
		{
			name: "mention",
			doc: doc(node("paragraph", map[string]interface{}{
				"type":  "mention",
				"attrs": map[string]interface{}{"id": "abc123", "text": "@John Doe"},
			})),
			want: "@John Doe",
		},
		{
			name: "unknown node falls through to children",
			doc:  doc(node("futureNodeType", node("paragraph", textNode("still visible")))),
			want: "still visible",
		},
		{
			name: "nil document",
			doc:  nil,
			want: "",
		},
		{
			name: "empty document",
			doc:  doc(),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenToText(tt.doc); got != tt.want {
				t.Errorf("FlattenToText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	got := FromText("First paragraph.\n\nSecond paragraph.")

	content, ok := got["content"].([]interface{})
	if !ok || len(content) != 2 {
		t.Fatalf("expected 2 paragraphs, got %v", got["content"])
	}
	if got["version"] != 1 || got["type"] != "doc" {
		t.Errorf("document envelope wrong: type=%v version=%v", got["type"], got["version"])
	}

	first, _ := content[0].(map[string]interface{})
	if first["type"] != "paragraph" {
		t.Errorf("first node type = %v", first["type"])
	}
}

func TestFromTextEmptyInput(t *testing.T) {
	got := FromText("")
	content, ok := got["content"].([]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("empty input should produce one empty paragraph, got %v", got["content"])
	}
}

func TestFromTextRoundTripThroughFlatten(t *testing.T) {
	original := "First paragraph.\n\nSecond paragraph."
	flattened := FlattenToText(FromText(original))
	if !strings.Contains(flattened, "First paragraph.") || !strings.Contains(flattened, "Second paragraph.") {
		t.Errorf("flattened output lost text: %q", flattened)
	}
}

func TestFlattenValue(t *testing.T) {
	if got := FlattenValue("plain server string"); got != "plain server string" {
		t.Errorf("string passthrough failed: %q", got)
	}
	if got := FlattenValue(doc(node("paragraph", textNode("adf text")))); got != "adf text" {
		t.Errorf("adf flatten failed: %q", got)
	}
	if got := FlattenValue(nil); got != "" {
		t.Errorf("nil should flatten to empty, got %q", got)
	}
}
