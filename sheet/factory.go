package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"scs/css"
)

// Options configure pool construction.
type Options struct {
	// Capacity overrides ComponentsPerTag for containers in this pool.
	Capacity int
	// Local is the scope recorded on newly created containers.
	Local bool
	// Extract recovers prior component blocks from serialized container
	// text. Defaults to the css package extractor.
	Extract css.ExtractFunc
	// Log receives debug-level pool activity. Defaults to a nop logger.
	Log *zap.Logger
}

func (o Options) normalized() Options {
	if o.Capacity <= 0 {
		o.Capacity = ComponentsPerTag
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Extract == nil {
		o.Extract = css.NewExtractor(o.Log).Extract
	}
	return o
}

// New creates an empty pool over a fresh document. New container elements are
// mounted under a head element in the returned document.
func New(opts Options) (*Sheet, *etree.Document) {
	opts = opts.normalized()
	doc := etree.NewDocument()
	mount := doc.CreateElement("head")
	return NewSheet(newTagConstructor(mount, opts), nil, nil, opts.Log), doc
}

// FromDocument rehydrates a pool from the container elements already present
// in doc, identified by the marker attribute. Every discovered element
// becomes one container seeded with its serialized text and local-scope flag;
// the name tokens recorded on the elements seed the used-names registry. A
// container whose text cannot be extracted is an error, never skipped
// silently; all such failures are reported together and abort construction.
// Brand-new containers are mounted under mount, or under the document root
// when mount is nil.
func FromDocument(doc *etree.Document, mount *etree.Element, opts Options) (*Sheet, error) {
	opts = opts.normalized()
	if mount == nil {
		mount = doc.Root()
	}
	if mount == nil {
		mount = doc.CreateElement("head")
	}

	var (
		tags  []Tag
		names []string
		errs  error
	)
	for _, el := range doc.FindElements("//*[@" + Attr + "]") {
		local := el.SelectAttrValue(LocalAttr, "") == "true"
		t, err := NewElementTag(el, local, opts.Extract, opts.Log)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to rehydrate container at %s: %w", el.GetPath(), err))
			continue
		}
		t.capacity = opts.Capacity
		tags = append(tags, t)
		names = append(names, t.Names()...)
	}
	if errs != nil {
		return nil, errs
	}
	return NewSheet(newTagConstructor(mount, opts), tags, names, opts.Log), nil
}

// FromHTML rehydrates a pool straight from serialized host markup. Style
// elements carrying the marker attribute are lifted, with their attributes
// and text content, into a fresh document so each has a mount parent, then
// handled as in FromDocument. The document is returned alongside the pool so
// callers can serialize it after further injection.
func FromHTML(r io.Reader, opts Options) (*Sheet, *etree.Document, error) {
	opts = opts.normalized()
	root, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to parse host markup: %w", err)
	}

	doc := etree.NewDocument()
	mount := doc.CreateElement("head")

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasAttr(n, Attr) {
			el := mount.CreateElement(n.Data)
			for _, a := range n.Attr {
				el.CreateAttr(a.Key, a.Val)
			}
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			if text := b.String(); text != "" {
				el.CreateText(text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	pool, err := FromDocument(doc, mount, opts)
	if err != nil {
		return nil, nil, err
	}
	return pool, doc, nil
}

// newTagConstructor returns the capability for minting brand-new container
// elements under mount.
func newTagConstructor(mount *etree.Element, opts Options) func() (Tag, error) {
	return func() (Tag, error) {
		el := mount.CreateElement("style")
		el.CreateAttr("type", "text/css")
		el.CreateAttr(Attr, "")
		el.CreateAttr(LocalAttr, strconv.FormatBool(opts.Local))
		t, err := NewElementTag(el, opts.Local, opts.Extract, opts.Log)
		if err != nil {
			return nil, err
		}
		t.capacity = opts.Capacity
		return t, nil
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
