package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quadrant-analyzer/internal/research/quadrant"
)

// equityFile is the wrapped form of an input file
type equityFile struct {
	Equities []quadrant.EquityInput `yaml:"equities"`
}

// LoadEquities reads equity inputs from a YAML or JSON file
func LoadEquities(path string) ([]quadrant.EquityInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	equities, err := ParseEquities(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return equities, nil
}

// ParseEquities accepts a single equity mapping, a list of equities,
// or a mapping with an "equities" list.
func ParseEquities(data []byte) ([]quadrant.EquityInput, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty equity file")
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		var list []quadrant.EquityInput
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return nonEmpty(list)
	case yaml.MappingNode:
		if hasKey(root, "equities") {
			var f equityFile
			if err := root.Decode(&f); err != nil {
				return nil, err
			}
			return nonEmpty(f.Equities)
		}
		var single quadrant.EquityInput
		if err := root.Decode(&single); err != nil {
			return nil, err
		}
		return []quadrant.EquityInput{single}, nil
	}
	return nil, fmt.Errorf("invalid equity file: expected a mapping or a list, got %s", kindName(root.Kind))
}

// MarshalEquities renders equities in the wrapped file form
func MarshalEquities(equities []quadrant.EquityInput) ([]byte, error) {
	return yaml.Marshal(equityFile{Equities: equities})
}

func nonEmpty(list []quadrant.EquityInput) ([]quadrant.EquityInput, error) {
	if len(list) == 0 {
		return nil, errors.New("equity file contains no equities")
	}
	return list, nil
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return fmt.Sprintf("kind %d", k)
}
