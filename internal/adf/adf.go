// Package adf flattens Atlassian Document Format content to plain text and
// builds minimal ADF documents from plain text. Flattening is lossy and
// one-directional: it exists so issue descriptions and comments can be shown
// to an agent, not so they can be round-tripped.
package adf

import (
	"fmt"
	"strings"
)

// FlattenToText extracts the readable text from an ADF document. Unknown
// node types contribute whatever text their children carry.
func FlattenToText(doc map[string]interface{}) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	flattenNodes(&sb, childNodes(doc), 0)
	return strings.TrimSpace(sb.String())
}

func childNodes(node map[string]interface{}) []map[string]interface{} {
	raw, ok := node["content"].([]interface{})
	if !ok {
		return nil
	}

	nodes := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			nodes = append(nodes, m)
		}
	}
	return nodes
}

func flattenNodes(sb *strings.Builder, nodes []map[string]interface{}, depth int) {
	for _, node := range nodes {
		flattenNode(sb, node, depth)
	}
}

func flattenNode(sb *strings.Builder, node map[string]interface{}, depth int) {
	nodeType, _ := node["type"].(string)

	switch nodeType {
	case "text":
		if text, ok := node["text"].(string); ok {
			sb.WriteString(text)
		}
	case "hardBreak":
		sb.WriteString("\n")
	case "paragraph", "heading", "blockquote":
		flattenNodes(sb, childNodes(node), depth)
		sb.WriteString("\n")
	case "codeBlock":
		flattenNodes(sb, childNodes(node), depth)
		sb.WriteString("\n")
	case "bulletList", "orderedList":
		for _, item := range childNodes(node) {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- ")
			flattenListItem(sb, item, depth+1)
		}
	case "mention":
		if attrs, ok := node["attrs"].(map[string]interface{}); ok {
			if text, ok := attrs["text"].(string); ok {
				sb.WriteString(text)
			}
		}
	case "emoji":
		if attrs, ok := node["attrs"].(map[string]interface{}); ok {
			if shortName, ok := attrs["shortName"].(string); ok {
				sb.WriteString(shortName)
			}
		}
	case "rule":
		sb.WriteString("---\n")
	default:
		flattenNodes(sb, childNodes(node), depth)
	}
}

func flattenListItem(sb *strings.Builder, item map[string]interface{}, depth int) {
	var inner strings.Builder
	flattenNodes(&inner, childNodes(item), depth)
	sb.WriteString(strings.TrimSpace(inner.String()))
	sb.WriteString("\n")
}

// FromText builds a minimal ADF document from plain text. Blank lines split
// paragraphs. This is what Cloud v3 write endpoints expect for description
// and comment bodies.
func FromText(text string) map[string]interface{} {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")

	content := make([]interface{}, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		content = append(content, map[string]interface{}{
			"type": "paragraph",
			"content": []interface{}{
				map[string]interface{}{"type": "text", "text": paragraph},
			},
		})
	}

	if len(content) == 0 {
		content = append(content, map[string]interface{}{"type": "paragraph"})
	}

	return map[string]interface{}{
		"type":    "doc",
		"version": 1,
		"content": content,
	}
}

// FlattenValue handles description/comment fields that may be an ADF object
// (Cloud v3) or a plain string (Server v2).
func FlattenValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		return FlattenToText(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
