package sheet

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"scs/css"
)

// tagState is the container lifecycle. A rehydrated container is read-only
// until the first mutating call materializes it; the transition runs at most
// once and only through materialize.
type tagState int

const (
	stateRehydrated tagState = iota
	stateWritable
)

// componentRecord tracks one component's accumulated css. Until the container
// is writable, rehydrated css sits in extracted; once writable, text is the
// live character-data node injection appends to.
type componentRecord struct {
	componentID string
	extracted   string
	text        *etree.CharData
}

// ElementTag is a style container backed by a live element in the hosted
// document. Constructed over an element serialized by a prior render pass, it
// rehydrates that element's component blocks and stays read-only until the
// first registration or injection swaps in a writable replacement element.
type ElementTag struct {
	proxy      *proxy
	local      bool
	capacity   int
	state      tagState
	components map[string]*componentRecord
	order      []string
	names      []string
	log        *zap.Logger
}

// NewElementTag rehydrates a container from el's current text content using
// extract. The element itself is left untouched until the first mutating
// call. A nil extract falls back to the default extractor.
func NewElementTag(el *etree.Element, local bool, extract css.ExtractFunc, log *zap.Logger) (*ElementTag, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if extract == nil {
		extract = css.NewExtractor(log).Extract
	}
	comps, err := extract(textContent(el))
	if err != nil {
		return nil, fmt.Errorf("unable to rehydrate style container: %w", err)
	}
	t := &ElementTag{
		proxy:      newProxy(el),
		local:      local,
		capacity:   ComponentsPerTag,
		components: make(map[string]*componentRecord, len(comps)),
		names:      strings.Fields(el.SelectAttrValue(Attr, "")),
		log:        log.Named("tag"),
	}
	for _, c := range comps {
		t.components[c.ComponentID] = &componentRecord{componentID: c.ComponentID, extracted: c.CSS}
		t.order = append(t.order, c.ComponentID)
	}
	if len(comps) > 0 {
		t.log.Debug("Rehydrated style container", zap.Int("components", len(comps)), zap.Bool("local", local))
	}
	return t, nil
}

// IsFull reports whether the container reached its component capacity.
func (t *ElementTag) IsFull() bool { return len(t.order) >= t.capacity }

// Size returns the number of registered components.
func (t *ElementTag) Size() int { return len(t.order) }

// Local reports whether the container holds locally scoped styles.
func (t *ElementTag) Local() bool { return t.local }

// Components returns the registered component ids in registration order.
func (t *ElementTag) Components() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Names returns the generated class names recorded on this container.
func (t *ElementTag) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// AddComponent registers componentID and queues an empty text placeholder for
// its css block. The container is materialized first if still read-only.
func (t *ElementTag) AddComponent(componentID string) error {
	if err := t.materialize(); err != nil {
		return err
	}
	if _, ok := t.components[componentID]; ok {
		return &DuplicateComponentError{ComponentID: componentID}
	}
	rec := &componentRecord{componentID: componentID, text: etree.NewText("")}
	t.proxy.appendChild(rec.text)
	t.components[componentID] = rec
	t.order = append(t.order, componentID)
	return nil
}

// Inject appends cssText to componentID's block. The first injection into an
// empty block prefixes the boundary marker line; a later rehydration depends
// on that exact marker to recover component boundaries. Names are recorded on
// the container's name list and written out as the marker attribute on flush.
func (t *ElementTag) Inject(componentID, cssText string, names ...string) error {
	if err := t.materialize(); err != nil {
		return err
	}
	rec, ok := t.components[componentID]
	if !ok {
		return &MissingComponentError{ComponentID: componentID}
	}
	if rec.text.Data == "" {
		rec.text.Data = css.Marker(componentID)
	}
	rec.text.Data += cssText
	for _, name := range names {
		if name != "" {
			t.names = append(t.names, name)
		}
	}
	return nil
}

// Flush writes the space-joined name list as the container's marker attribute
// and applies pending mutations to the backing element. Calling it with no
// new work only rewrites the attribute.
func (t *ElementTag) Flush() error {
	t.proxy.setAttr(Attr, strings.Join(t.names, " "))
	return t.proxy.flush()
}

// HTML serializes the backing element, flushing first so the output reflects
// every prior registration and injection.
func (t *ElementTag) HTML() (string, error) {
	if err := t.Flush(); err != nil {
		return "", err
	}
	return t.proxy.html()
}

// Clone is not supported for element-backed containers; only VirtualTag can
// be cloned.
func (t *ElementTag) Clone() (Tag, error) {
	return nil, &NotSupportedError{Op: "clone", Variant: "element-backed"}
}

// materialize performs the one-time transition from the read-only rehydrated
// element to a writable replacement. A container with no rehydrated
// components keeps its current element; otherwise a fresh element with the
// same identity is seeded with every rehydrated block, in order, and swapped
// into the old element's position. External references taken before the swap
// keep observing the stale element.
func (t *ElementTag) materialize() error {
	if t.state == stateWritable {
		return nil
	}
	if len(t.order) == 0 {
		t.state = stateWritable
		return nil
	}
	old := t.proxy.element()
	parent := old.Parent()
	if parent == nil {
		return ErrNoReplacementParent
	}
	fresh := etree.NewElement(old.Tag)
	fresh.Space = old.Space
	for _, a := range old.Attr {
		fresh.CreateAttr(a.FullKey(), a.Value)
	}
	fresh.CreateText("\n")
	for _, id := range t.order {
		rec := t.components[id]
		rec.text = etree.NewText(rec.extracted)
		rec.extracted = ""
		fresh.AddChild(rec.text)
	}
	idx := old.Index()
	parent.InsertChildAt(idx, fresh)
	parent.RemoveChild(old)
	t.proxy.swap(fresh)
	t.state = stateWritable
	t.log.Debug("Materialized writable style container", zap.Int("components", len(t.order)))
	return nil
}

// textContent concatenates el's character-data children.
func textContent(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}
