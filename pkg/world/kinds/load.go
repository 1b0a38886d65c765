package kinds

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/tile-trees/pkg/world/tree"
)

//go:embed kinds.schema.json
var schemaJSON string

const schemaURL = "kinds.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

type file struct {
	Kinds []definition `yaml:"kinds"`
}

// definition is one kind as written in a definition file. Omitted numbers
// take the common tree's values.
type definition struct {
	Name           string   `yaml:"name"`
	Trunk          uint16   `yaml:"trunk"`
	Sapling        uint16   `yaml:"sapling"`
	GrowChance     int      `yaml:"growChance"`
	GenerateChance int      `yaml:"generateChance"`
	ValidGround    []uint16 `yaml:"validGround"`
	ValidWalls     []uint16 `yaml:"validWalls"`
	MinHeight      int      `yaml:"minHeight"`
	MaxHeight      int      `yaml:"maxHeight"`
	TopPadding     *int     `yaml:"topPadding"`
	Chances        chances  `yaml:"chances"`
}

type chances struct {
	Root           int `yaml:"root"`
	Branch         int `yaml:"branch"`
	NotLeafyBranch int `yaml:"notLeafyBranch"`
	BrokenTop      int `yaml:"brokenTop"`
	LessBark       int `yaml:"lessBark"`
	MoreBark       int `yaml:"moreBark"`
}

const defaultGrowChance = 5

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func (d definition) kind() Kind {
	s := tree.CommonTree(d.Trunk)
	s.MinHeight = orDefault(d.MinHeight, s.MinHeight)
	s.MaxHeight = orDefault(d.MaxHeight, s.MaxHeight)
	if d.TopPadding != nil {
		s.TopPadding = *d.TopPadding
	}
	s.RootChance = orDefault(d.Chances.Root, s.RootChance)
	s.BranchChance = orDefault(d.Chances.Branch, s.BranchChance)
	s.NotLeafyBranchChance = orDefault(d.Chances.NotLeafyBranch, s.NotLeafyBranchChance)
	s.BrokenTopChance = orDefault(d.Chances.BrokenTop, s.BrokenTopChance)
	s.LessBarkChance = orDefault(d.Chances.LessBark, s.LessBarkChance)
	s.MoreBarkChance = orDefault(d.Chances.MoreBark, s.MoreBarkChance)

	return Kind{
		Name:           d.Name,
		TrunkType:      d.Trunk,
		SaplingType:    d.Sapling,
		Settings:       s,
		GrowChance:     orDefault(d.GrowChance, defaultGrowChance),
		GenerateChance: d.GenerateChance,
		ValidGround:    d.ValidGround,
		ValidWalls:     d.ValidWalls,
	}
}

// LoadDefinitions parses a YAML kind definition document, checks it
// against the embedded schema and returns the kinds it declares.
func LoadDefinitions(r io.Reader) ([]Kind, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read kinds: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse kinds: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse kinds: %w", err)
	}

	out := make([]Kind, 0, len(f.Kinds))
	for _, d := range f.Kinds {
		k := d.kind()
		if err := k.Validate(); err != nil {
			return nil, fmt.Errorf("load kinds: %w", err)
		}
		out = append(out, k)
	}
	return out, nil
}

// validateDocument runs the schema over a YAML-decoded document. The
// document goes through JSON first so numbers and maps have the shapes
// the validator expects.
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile kinds schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert kinds: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("convert kinds: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("validate kinds: %w", err)
	}
	return nil
}

// LoadFile reads kind definitions from path.
func LoadFile(path string) ([]Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kinds: %w", err)
	}
	defer f.Close()
	return LoadDefinitions(f)
}
