package sheet

import (
	"errors"

	"github.com/beevik/etree"
)

type mutationKind int

const (
	mutationAppendChild mutationKind = iota
	mutationSetAttr
)

// mutation is one recorded structural change. The target element is resolved
// at flush time, not at enqueue time, so pending mutations survive the
// one-time element swap and replay against the current handle.
type mutation struct {
	kind  mutationKind
	child etree.Token
	key   string
	value string
}

// proxy defers structural mutations of a container element into a FIFO queue.
// A hosted element may not be ready for mutation at the time calls are
// recorded, and batching collapses many small writes into a single pass over
// the element.
type proxy struct {
	el    *etree.Element
	queue []mutation
}

func newProxy(el *etree.Element) *proxy {
	return &proxy{el: el}
}

func (p *proxy) element() *etree.Element { return p.el }

// swap redirects all subsequent and still-pending mutations to el. It is
// called at most once per container lifetime, during materialization.
func (p *proxy) swap(el *etree.Element) { p.el = el }

func (p *proxy) appendChild(t etree.Token) {
	p.queue = append(p.queue, mutation{kind: mutationAppendChild, child: t})
}

func (p *proxy) setAttr(key, value string) {
	p.queue = append(p.queue, mutation{kind: mutationSetAttr, key: key, value: value})
}

// flush applies the queued mutations to the current element in enqueue order.
// With nothing pending it is a no-op.
func (p *proxy) flush() error {
	if len(p.queue) == 0 {
		return nil
	}
	if p.el == nil {
		return errors.New("unable to flush mutations: no backing element assigned")
	}
	for _, m := range p.queue {
		switch m.kind {
		case mutationAppendChild:
			p.el.AddChild(m.child)
		case mutationSetAttr:
			p.el.CreateAttr(m.key, m.value)
		}
	}
	p.queue = p.queue[:0]
	return nil
}

// html serializes the current element, flushing first so the output reflects
// every recorded mutation.
func (p *proxy) html() (string, error) {
	if err := p.flush(); err != nil {
		return "", err
	}
	if p.el == nil {
		return "", errors.New("unable to serialize: no backing element assigned")
	}
	doc := etree.NewDocument()
	doc.SetRoot(p.el.Copy())
	return doc.WriteToString()
}
