// Package sheet manages the pool of style containers backing generated
// component styles in a hosted document. It rehydrates containers serialized
// by a prior render pass, packs newly registered components into containers
// up to a fixed capacity, and defers structural mutation of the live container
// elements until a flush or serialization forces it.
package sheet

const (
	// ComponentsPerTag caps how many components one style container holds
	// before the pool rolls over to a fresh container.
	ComponentsPerTag = 40

	// Attr marks container elements in the hosted document. Its value is the
	// space-joined list of generated class names the container backs.
	Attr = "data-styled-components"

	// LocalAttr records whether a container holds locally scoped styles.
	LocalAttr = "data-styled-components-is-local"
)

// Tag is one style container. Two variants exist: ElementTag, backed by a
// live element in the hosted document, and VirtualTag, which accumulates css
// purely in memory. Operations a variant cannot perform return
// *NotSupportedError.
type Tag interface {
	// IsFull reports whether the container reached its component capacity.
	IsFull() bool

	// AddComponent registers a component. Every component must be registered
	// exactly once, before any css is injected for it.
	AddComponent(componentID string) error

	// Inject appends css to a registered component's block, prefixing the
	// block with its boundary marker on first injection. Any names given are
	// recorded on the container's name list.
	Inject(componentID, cssText string, names ...string) error

	// Flush writes the name-list attribute and applies pending mutations to
	// the backing element, where one exists.
	Flush() error

	// HTML serializes the container, flushing first so the output reflects
	// every prior registration and injection.
	HTML() (string, error)

	// Clone returns an independent copy of the container.
	Clone() (Tag, error)

	// Components returns the registered component ids in registration order.
	Components() []string

	// Names returns the generated class names recorded on this container.
	Names() []string

	// Size returns the number of registered components.
	Size() int

	// Local reports whether the container holds locally scoped styles.
	Local() bool
}

var (
	_ Tag = (*ElementTag)(nil)
	_ Tag = (*VirtualTag)(nil)
)
