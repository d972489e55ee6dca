package openapi

import (
	"regexp"
	"strconv"
)

// componentRegistry deduplicates schema fragments by digest. A fragment is
// published under components/schemas once a second occurrence proves the
// shape is shared, or immediately when forced; singletons stay inline.
type componentRegistry struct {
	byDigest map[string]*component
	names    map[string]struct{}
}

type component struct {
	name      string
	schema    map[string]any
	uses      int
	published bool
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		byDigest: map[string]*component{},
		names:    map[string]struct{}{},
	}
}

// register notes one use of the node's shape and returns a $ref once the
// shape is published. The first sighting returns "" so the caller inlines it.
func (r *componentRegistry) register(nameHint string, node *schemaNode) string {
	return r.track(nameHint, node, false)
}

// forceReference publishes the node's shape immediately under the given name.
func (r *componentRegistry) forceReference(name string, node *schemaNode) string {
	return r.track(name, node, true)
}

func (r *componentRegistry) track(nameHint string, node *schemaNode, force bool) string {
	if node == nil {
		return ""
	}
	digest := node.Digest()
	if digest == "" {
		return ""
	}

	entry, ok := r.byDigest[digest]
	if !ok {
		entry = &component{name: r.uniqueName(nameHint)}
		r.byDigest[digest] = entry
	}
	entry.uses++
	if force || entry.uses >= 2 {
		entry.published = true
	}
	if !entry.published {
		return ""
	}
	if entry.schema == nil {
		entry.schema = node.inlineOpenAPI()
	}
	return "#/components/schemas/" + entry.name
}

// uniqueName sanitizes the hint and disambiguates collisions with a numeric
// suffix. Names are claimed on first use and never released.
func (r *componentRegistry) uniqueName(hint string) string {
	safe := sanitizeComponentName(hint)
	if safe == "" {
		safe = "Schema"
	}
	name := safe
	for suffix := 1; ; suffix++ {
		if _, taken := r.names[name]; !taken {
			r.names[name] = struct{}{}
			return name
		}
		name = safe + strconv.Itoa(suffix)
	}
}

// componentsMap collects every published fragment, or nil when nothing
// earned a components section.
func (r *componentRegistry) componentsMap() map[string]any {
	out := make(map[string]any, len(r.byDigest))
	for _, entry := range r.byDigest {
		if !entry.published {
			continue
		}
		if entry.schema == nil {
			entry.schema = map[string]any{}
		}
		out[entry.name] = entry.schema
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var componentNameRegexp = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// sanitizeComponentName reduces a hint to the character set OpenAPI allows
// for component keys, prefixing an underscore when the result would start
// with a digit.
func sanitizeComponentName(name string) string {
	name = componentNameRegexp.ReplaceAllString(name, "_")
	name = trimUnderscores(name)
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

func trimUnderscores(input string) string {
	start := 0
	for start < len(input) && input[start] == '_' {
		start++
	}
	end := len(input)
	for end > start && input[end-1] == '_' {
		end--
	}
	return input[start:end]
}
