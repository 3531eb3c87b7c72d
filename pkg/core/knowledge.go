package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Knowledge is a key -> Entry map that remembers insertion order.
// Enumeration order drives first-match-wins substring scans, so it must be
// stable across save/load cycles. Overwriting a key keeps its position.
// The zero value is ready to use.
type Knowledge struct {
	keys    []string
	entries map[string]Entry
}

// NewKnowledge returns an empty Knowledge.
func NewKnowledge() *Knowledge {
	return &Knowledge{entries: make(map[string]Entry)}
}

// Set inserts or replaces an entry. The key is stored as given;
// callers normalize it first.
func (k *Knowledge) Set(key string, e Entry) {
	if k.entries == nil {
		k.entries = make(map[string]Entry)
	}
	if _, ok := k.entries[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.entries[key] = e
}

// Get returns the entry stored under key.
func (k *Knowledge) Get(key string) (Entry, bool) {
	if k == nil {
		return Entry{}, false
	}
	e, ok := k.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (k *Knowledge) Len() int {
	if k == nil {
		return 0
	}
	return len(k.keys)
}

// Keys returns the keys in insertion order.
func (k *Knowledge) Keys() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Range calls fn for every entry in insertion order until fn returns false.
func (k *Knowledge) Range(fn func(key string, e Entry) bool) {
	if k == nil {
		return
	}
	for _, key := range k.keys {
		if !fn(key, k.entries[key]) {
			return
		}
	}
}

// Clone returns a deep copy.
func (k *Knowledge) Clone() *Knowledge {
	out := NewKnowledge()
	k.Range(func(key string, e Entry) bool {
		out.Set(key, e)
		return true
	})
	return out
}

// MarshalJSON writes a JSON object with keys in insertion order.
func (k *Knowledge) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range k.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(k.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the payload.
// A literal null yields an empty Knowledge; null entries are skipped.
func (k *Knowledge) UnmarshalJSON(data []byte) error {
	*k = Knowledge{entries: make(map[string]Entry)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		if bytes.Equal(raw, []byte("null")) {
			continue
		}
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		k.Set(key, e)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalYAML emits a mapping node so key order survives YAML output.
func (k *Knowledge) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range k.Keys() {
		var value yaml.Node
		if err := value.Encode(k.entries[key]); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node in document order, skipping null entries.
func (k *Knowledge) UnmarshalYAML(node *yaml.Node) error {
	*k = Knowledge{entries: make(map[string]Entry)}

	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got node kind %d at line %d", node.Kind, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if valueNode.Tag == "!!null" {
			continue
		}
		var e Entry
		if err := valueNode.Decode(&e); err != nil {
			return fmt.Errorf("entry %q: %w", keyNode.Value, err)
		}
		k.Set(keyNode.Value, e)
	}
	return nil
}
