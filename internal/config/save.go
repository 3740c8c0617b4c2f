package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searchurl"
	"github.com/zjrosen/tagsearch/internal/tracing"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindFloat
)

type settableKey struct {
	kind     valueKind
	validate func(string) error
}

// settableKeys lists the scalar keys `tagsearch config set` may change.
// Keys under flags.* are accepted separately as booleans.
var settableKeys = map[string]settableKey{
	"store.backend": {kind: kindString, validate: func(v string) error {
		return ValidateStore(StoreConfig{Backend: v})
	}},
	"store.path": {kind: kindString},
	"search.url": {kind: kindString, validate: func(v string) error {
		return ValidateSearch(SearchConfig{URL: v, ShareMessage: searchurl.DefaultShareMessage})
	}},
	"search.share_subject": {kind: kindString},
	"search.share_message": {kind: kindString, validate: searchurl.ValidateMessage},
	"auto_refresh":         {kind: kindBool},
	"ui.show_counts":       {kind: kindBool},
	"ui.show_preview":      {kind: kindBool},
	"ui.confirm_delete":    {kind: kindBool},
	"ui.markdown_style": {kind: kindString, validate: func(v string) error {
		if v != "dark" && v != "light" {
			return fmt.Errorf("must be \"dark\" or \"light\", got %q", v)
		}
		return nil
	}},
	"tracing.enabled": {kind: kindBool},
	"tracing.exporter": {kind: kindString, validate: func(v string) error {
		return tracing.Config{Exporter: v}.Validate()
	}},
	"tracing.file_path":     {kind: kindString},
	"tracing.otlp_endpoint": {kind: kindString},
	"tracing.sample_rate": {kind: kindFloat, validate: func(v string) error {
		f, _ := strconv.ParseFloat(v, 64)
		return tracing.Config{SampleRate: f}.Validate()
	}},
	"tracing.service_name": {kind: kindString},
}

// SettableKeys returns the keys accepted by SetValue, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys)+1)
	for k := range settableKeys {
		keys = append(keys, k)
	}
	keys = append(keys, "flags.<name>")
	slices.Sort(keys)
	return keys
}

// SetValue sets a single dotted key (e.g. "search.url") in the config file,
// preserving comments and formatting elsewhere by editing a yaml.Node.
func SetValue(configPath, key, value string) error {
	def, err := lookupKey(key)
	if err != nil {
		return err
	}
	value, err = checkValue(key, def, value)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	node, err := ensurePath(doc.Content[0], strings.Split(key, "."))
	if err != nil {
		return err
	}
	node.Kind = yaml.ScalarNode
	node.Tag = scalarTag(def.kind)
	node.Value = value
	node.Style = 0
	node.Content = nil

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Updated config value", "key", key, "path", configPath)
	return nil
}

func lookupKey(key string) (settableKey, error) {
	if def, ok := settableKeys[key]; ok {
		return def, nil
	}
	if name, ok := strings.CutPrefix(key, "flags."); ok && name != "" && !strings.Contains(name, ".") {
		return settableKey{kind: kindBool}, nil
	}
	return settableKey{}, fmt.Errorf("unknown config key %q (settable: %s)", key, strings.Join(SettableKeys(), ", "))
}

// checkValue validates value for key and returns its canonical spelling.
func checkValue(key string, def settableKey, value string) (string, error) {
	switch def.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		value = strconv.FormatBool(b)
	case kindFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", fmt.Errorf("%s must be a number, got %q", key, value)
		}
	}
	if def.validate != nil {
		if err := def.validate(value); err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
	}
	return value, nil
}

func scalarTag(kind valueKind) string {
	switch kind {
	case kindBool:
		return "!!bool"
	case kindFloat:
		// Left untagged so "1" stays a plain number.
		return ""
	default:
		return "!!str"
	}
}

// ensurePath walks mapping nodes along path, creating missing mappings, and
// returns the value node for the last segment.
func ensurePath(m *yaml.Node, path []string) (*yaml.Node, error) {
	for i, seg := range path {
		var next *yaml.Node
		for j := 0; j+1 < len(m.Content); j += 2 {
			if m.Content[j].Value == seg {
				next = m.Content[j+1]
				break
			}
		}
		last := i == len(path)-1
		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode}
			if last {
				next = &yaml.Node{Kind: yaml.ScalarNode}
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: seg}, next)
		}
		if last {
			return next, nil
		}
		if next.Kind == yaml.ScalarNode && (next.Tag == "!!null" || next.Value == "") {
			next.Kind = yaml.MappingNode
			next.Tag = ""
			next.Value = ""
		}
		if next.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("config key %q is not a section", strings.Join(path[:i+1], "."))
		}
		m = next
	}
	return nil, fmt.Errorf("empty config key")
}

// writeAtomic writes data to a temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".tagsearch.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
