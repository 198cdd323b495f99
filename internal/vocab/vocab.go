// Package vocab provides the sight-word lists used by the words game.
package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// kindergarten is the essential kindergarten sight-word list.
var kindergarten = []string{
	"I", "a", "the", "to", "play", "see", "for", "like", "you", "who",
	"what", "go", "so", "look", "come", "said", "be", "he", "she", "me",
	"we", "are", "no", "they", "was", "will", "one", "two", "three", "four",
	"that", "this", "do", "my", "too", "am", "can", "at", "all", "good", "say",
}

// Default returns a copy of the built-in word list.
func Default() []string {
	return slices.Clone(kindergarten)
}

// List is the on-disk format of a custom word list.
//
//	name: Kindergarten
//	words: [I, a, the, to]
type List struct {
	Name  string   `yaml:"name" json:"name,omitempty"`
	Words []string `yaml:"words" json:"words"`
}

const listSchema = `{
	"type": "object",
	"required": ["words"],
	"properties": {
		"name": {"type": "string"},
		"words": {
			"type": "array",
			"minItems": 4,
			"uniqueItems": true,
			"items": {"type": "string", "minLength": 1, "pattern": "^\\S+$"}
		}
	}
}`

// LoadFile reads a YAML word list and validates it.
func LoadFile(path string) (*List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML word list.
func Parse(raw []byte) (*List, error) {
	var list List
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}
	if err := validate(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(listSchema), &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://word-list.json", doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://word-list.json")
	})
	return compiled, compileErr
}

// validate checks the list against the word-list schema. The jsonschema
// library expects a parsed JSON value, so the struct is round-tripped
// through encoding/json first.
func validate(list *List) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile word-list schema: %w", err)
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode word list: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode word list: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("invalid word list: %w", err)
	}
	return nil
}
