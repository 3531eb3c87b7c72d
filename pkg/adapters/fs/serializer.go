package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/wasi/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write the knowledge file in a specific format.
type Serializer interface {
	// Parse reads from r and returns the knowledge. Implementations report
	// undecodable input wrapped in core.ErrMalformed.
	Parse(r io.Reader) (*core.Knowledge, error)
	// Serialize converts the knowledge to bytes.
	Serialize(k *core.Knowledge) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles the JSON object format used by the original
// browser storage slot: {"topic": {"text": ..., "url": ...}, ...}.
type JSONSerializer struct {
	// Indent, when set, pretty-prints the output.
	Indent string
}

// NewJSONSerializer creates a new JSON serializer with two-space indentation.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Knowledge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.NewKnowledge(), nil
	}

	k := core.NewKnowledge()
	if err := json.Unmarshal(data, k); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", core.ErrMalformed, err)
	}
	return k, nil
}

func (s *JSONSerializer) Serialize(k *core.Knowledge) ([]byte, error) {
	data, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	if s.Indent == "" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", s.Indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles a YAML mapping of topic -> entry.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Knowledge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.NewKnowledge(), nil
	}

	k := core.NewKnowledge()
	if err := yaml.Unmarshal(data, k); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrMalformed, err)
	}
	return k, nil
}

func (s *YAMLSerializer) Serialize(k *core.Knowledge) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(k); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
