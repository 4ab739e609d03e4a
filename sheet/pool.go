package sheet

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Sheet is the pool coordinator. It owns the ordered container list and the
// registry of generated class names already backed by some container, routes
// registration and injection to a container with free capacity, and asks its
// constructor for a fresh container when the last one fills up. Containers
// are only ever appended; the pool never evicts.
type Sheet struct {
	log           *zap.Logger
	construct     func() (Tag, error)
	tags          []Tag
	componentTags map[string]Tag
	names         map[string]struct{}
}

// NewSheet creates a pool over already-rehydrated containers. Components
// living in those containers are indexed so later injections route back to
// them, and names seeds the used-names registry. construct mints brand-new
// containers once existing ones fill up.
func NewSheet(construct func() (Tag, error), tags []Tag, names []string, log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sheet{
		log:           log.Named("sheet").With(zap.String("pool", uuid.NewString())),
		construct:     construct,
		tags:          tags,
		componentTags: make(map[string]Tag),
		names:         make(map[string]struct{}, len(names)),
	}
	for _, t := range tags {
		for _, id := range t.Components() {
			s.componentTags[id] = t
		}
	}
	for _, name := range names {
		s.names[name] = struct{}{}
	}
	s.log.Debug("Created style pool", zap.Int("containers", len(tags)), zap.Int("components", len(s.componentTags)), zap.Int("names", len(s.names)))
	return s
}

// HasName reports whether a generated class name is already backed by this
// pool, letting callers skip re-injecting css that survived rehydration.
func (s *Sheet) HasName(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Register ensures componentID has a container and registers it there.
// Registering the same component twice is caller misuse and fails without
// touching any container.
func (s *Sheet) Register(componentID string) error {
	if _, ok := s.componentTags[componentID]; ok {
		return &DuplicateComponentError{ComponentID: componentID}
	}
	_, err := s.getOrCreateTag(componentID)
	return err
}

// Inject routes css for componentID to its container, registering the
// component on first use. Names are recorded in the used-names registry once
// the injection succeeds.
func (s *Sheet) Inject(componentID, cssText string, names ...string) error {
	tag, err := s.getOrCreateTag(componentID)
	if err != nil {
		return err
	}
	if err := tag.Inject(componentID, cssText, names...); err != nil {
		return err
	}
	for _, name := range names {
		if name != "" {
			s.names[name] = struct{}{}
		}
	}
	return nil
}

// Flush applies every container's pending mutations to the hosted document.
func (s *Sheet) Flush() error {
	var errs error
	for _, t := range s.tags {
		errs = multierr.Append(errs, t.Flush())
	}
	return errs
}

// HTML serializes all containers in order and concatenates their markup.
func (s *Sheet) HTML() (string, error) {
	var b strings.Builder
	for _, t := range s.tags {
		h, err := t.HTML()
		if err != nil {
			return "", err
		}
		b.WriteString(h)
	}
	return b.String(), nil
}

// Tags returns the pool's containers in creation order.
func (s *Sheet) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// getOrCreateTag returns the container already holding componentID, or
// registers it into the last container with free capacity, opening a new one
// when the pool is full.
func (s *Sheet) getOrCreateTag(componentID string) (Tag, error) {
	if t, ok := s.componentTags[componentID]; ok {
		return t, nil
	}
	var tag Tag
	if n := len(s.tags); n > 0 && !s.tags[n-1].IsFull() {
		tag = s.tags[n-1]
	} else {
		t, err := s.construct()
		if err != nil {
			return nil, fmt.Errorf("unable to create style container: %w", err)
		}
		s.tags = append(s.tags, t)
		tag = t
		s.log.Debug("Opened new style container", zap.Int("containers", len(s.tags)))
	}
	if err := tag.AddComponent(componentID); err != nil {
		return nil, err
	}
	s.componentTags[componentID] = tag
	return tag, nil
}
