package sheet

import (
	"fmt"
	"strings"

	"scs/css"
)

// VirtualTag is the logical container variant with no backing element. It
// accumulates css purely in memory and renders its markup textually, so it
// needs no hosted document and never materializes. Unlike ElementTag it can
// be cloned, which render passes use to fork an independent pool from a
// warmed-up one.
type VirtualTag struct {
	local      bool
	capacity   int
	components map[string]*virtualRecord
	order      []string
	names      []string
}

type virtualRecord struct {
	componentID string
	css         string
}

// NewVirtualTag creates an empty logical container.
func NewVirtualTag(local bool) *VirtualTag {
	return &VirtualTag{
		local:      local,
		capacity:   ComponentsPerTag,
		components: make(map[string]*virtualRecord),
	}
}

// IsFull reports whether the container reached its component capacity.
func (t *VirtualTag) IsFull() bool { return len(t.order) >= t.capacity }

// Size returns the number of registered components.
func (t *VirtualTag) Size() int { return len(t.order) }

// Local reports whether the container holds locally scoped styles.
func (t *VirtualTag) Local() bool { return t.local }

// Components returns the registered component ids in registration order.
func (t *VirtualTag) Components() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Names returns the generated class names recorded on this container.
func (t *VirtualTag) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// AddComponent registers componentID with an empty css block.
func (t *VirtualTag) AddComponent(componentID string) error {
	if _, ok := t.components[componentID]; ok {
		return &DuplicateComponentError{ComponentID: componentID}
	}
	t.components[componentID] = &virtualRecord{componentID: componentID}
	t.order = append(t.order, componentID)
	return nil
}

// Inject appends cssText to componentID's block, prefixing the boundary
// marker line on first injection.
func (t *VirtualTag) Inject(componentID, cssText string, names ...string) error {
	rec, ok := t.components[componentID]
	if !ok {
		return &MissingComponentError{ComponentID: componentID}
	}
	if rec.css == "" {
		rec.css = css.Marker(componentID)
	}
	rec.css += cssText
	for _, name := range names {
		if name != "" {
			t.names = append(t.names, name)
		}
	}
	return nil
}

// Flush is a no-op: there is no backing element to mutate.
func (t *VirtualTag) Flush() error { return nil }

// HTML renders the container as a style element with the marker and scope
// attributes, component blocks concatenated in registration order.
func (t *VirtualTag) HTML() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<style type="text/css" %s="%s" %s="%t">`, Attr, strings.Join(t.names, " "), LocalAttr, t.local)
	for _, id := range t.order {
		b.WriteString(t.components[id].css)
	}
	b.WriteString("</style>")
	return b.String(), nil
}

// Clone returns an independent deep copy of the container.
func (t *VirtualTag) Clone() (Tag, error) {
	out := &VirtualTag{
		local:      t.local,
		capacity:   t.capacity,
		components: make(map[string]*virtualRecord, len(t.components)),
		order:      make([]string, len(t.order)),
		names:      make([]string, len(t.names)),
	}
	copy(out.order, t.order)
	copy(out.names, t.names)
	for id, rec := range t.components {
		cp := *rec
		out.components[id] = &cp
	}
	return out, nil
}
