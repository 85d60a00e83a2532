package transform

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Factory builds a transformer from decoded options.
type Factory func(options map[string]any) (Transformer, error)

// Def describes a registered transformer kind.
type Def struct {
	// Kind is the name used in pipeline specs (e.g. "clip_outliers").
	Kind string
	// Description is a one-line summary for CLI listings.
	Description string
	// New builds a configured instance.
	New Factory
}

var registry = map[string]Def{}

// Register adds a transformer kind to the registry. It panics on
// duplicate registration; kinds are registered from init functions.
func Register(def Def) {
	if def.Kind == "" || def.New == nil {
		panic("transform: Register requires a kind and a factory")
	}
	if _, ok := registry[def.Kind]; ok {
		panic(fmt.Sprintf("transform: kind %q registered twice", def.Kind))
	}
	registry[def.Kind] = def
}

// Kinds returns all registered definitions sorted by kind.
func Kinds() []Def {
	defs := make([]Def, 0, len(registry))
	for _, d := range registry {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Kind < defs[j].Kind })
	return defs
}

// New builds a transformer of the given kind from its options map.
func New(kind string, options map[string]any) (Transformer, error) {
	def, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown transformer kind %q", kind)
	}
	return def.New(options)
}

// decodeOptions decodes an options map into a unit's options struct.
// Unknown keys are errors so typos in pipeline specs fail loudly.
func decodeOptions(kind string, options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if err := dec.Decode(options); err != nil {
		return fmt.Errorf("%s: invalid options: %w", kind, err)
	}
	return nil
}
