package loader

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pricebook/core/pricebook"
)

// maxYAMLNodes caps node visits after alias expansion.
const maxYAMLNodes = 1 << 18

// decodeYAML walks the node tree so mapping order survives
func decodeYAML(r io.Reader) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	w := &yamlWalker{active: make(map[*yaml.Node]bool)}
	return w.value(&root)
}

// yamlWalker expands aliases and merge keys while refusing cycles.
type yamlWalker struct {
	active map[*yaml.Node]bool
	nodes  int
}

func (w *yamlWalker) value(n *yaml.Node) (any, error) {
	w.nodes++
	if w.nodes > maxYAMLNodes {
		return nil, fmt.Errorf("line %d: document too large after alias expansion", n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil || w.active[n.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias %q", n.Line, n.Value)
		}
		return w.value(n.Alias)
	case yaml.MappingNode:
		w.active[n] = true
		defer delete(w.active, n)
		return w.mapping(n)
	case yaml.SequenceNode:
		w.active[n] = true
		defer delete(w.active, n)
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := w.value(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported node", n.Line)
}

// mapping builds an object. Keys merged with << sit where the merge key
// appears, explicit keys win and earlier merge sources beat later ones.
func (w *yamlWalker) mapping(n *yaml.Node) (*pricebook.Object, error) {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
		}
		if !isMergeKey(key) {
			explicit[key.Value] = true
		}
	}

	obj := pricebook.NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if isMergeKey(key) {
			if err := w.merge(obj, val, explicit); err != nil {
				return nil, err
			}
			continue
		}
		v, err := w.value(val)
		if err != nil {
			return nil, err
		}
		obj.Set(key.Value, v)
	}
	return obj, nil
}

func (w *yamlWalker) merge(dst *pricebook.Object, val *yaml.Node, explicit map[string]bool) error {
	var sources []*yaml.Node
	switch resolveAlias(val).Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{val}
	case yaml.SequenceNode:
		sources = resolveAlias(val).Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping or a list of mappings", val.Line)
	}

	for _, src := range sources {
		if resolveAlias(src).Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merge value must be a mapping or a list of mappings", src.Line)
		}
		v, err := w.value(src)
		if err != nil {
			return err
		}
		merged := v.(*pricebook.Object)
		for _, k := range merged.Keys() {
			if explicit[k] {
				continue
			}
			if _, seen := dst.Get(k); seen {
				continue
			}
			mv, _ := merged.Get(k)
			dst.Set(k, mv)
		}
	}
	return nil
}

func isMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge"
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int", "!!float":
		if d, err := decimal.NewFromString(n.Value); err == nil {
			return d, nil
		}
		// hex, octal and underscore forms
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: %s is not a price", n.Line, n.Value)
		}
		return decimal.NewFromFloat(f), nil
	default:
		return n.Value, nil
	}
}
