// Package geometry wraps the static municipal map. Regions are addressed
// only by their id attribute; coordinates are never interpreted here.
package geometry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"choropleth-service/internal/choropleth/model"
	"choropleth-service/internal/choropleth/service"
)

//go:embed assets/municipios.svg
var sampleSVG []byte

var ErrEmptyViewport = errors.New("geometry has an empty viewport")

// ViewBox is the declared viewport of the map.
type ViewBox struct {
	X, Y, W, H float64
}

// Document is an immutable parsed map. Render works on copies.
type Document struct {
	doc *etree.Document
	ids []string
	vb  ViewBox
}

// Load reads the map at path, or the embedded sample when path is empty.
func Load(path string) (*Document, error) {
	if path == "" {
		return Parse(sampleSVG)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geometry: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, errors.New("parse geometry: root element is not <svg>")
	}
	d := &Document{doc: doc, vb: readViewBox(root)}
	walkIDs(root, func(el *etree.Element) {
		d.ids = append(d.ids, el.SelectAttrValue("id", ""))
	})
	return d, nil
}

// IDs lists every addressable region in document order.
func (d *Document) IDs() []string {
	out := make([]string, len(d.ids))
	copy(out, d.ids)
	return out
}

func (d *Document) ViewBox() ViewBox { return d.vb }

// Render returns a styled copy of the map. Regions without a binding keep
// their original style.
func (d *Document) Render(bindings []model.Binding) ([]byte, error) {
	byID := make(map[string]model.Binding, len(bindings))
	for _, b := range bindings {
		byID[b.ID] = b
	}

	doc := d.doc.Copy()
	root := doc.Root()
	// явные размеры и xmlns нужны растеризатору и при скачивании
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("width", formatNum(d.vb.W))
	root.CreateAttr("height", formatNum(d.vb.H))

	walkIDs(root, func(el *etree.Element) {
		b, ok := byID[el.SelectAttrValue("id", "")]
		if !ok {
			return
		}
		style := el.SelectAttrValue("style", "")
		style = mergeStyle(style, [][2]string{
			{"fill", b.Fill},
			{"opacity", formatNum(b.Opacity)},
			{"stroke", service.StrokeColor},
			{"stroke-width", formatNum(service.StrokeWidth)},
			{"cursor", "pointer"},
		})
		el.CreateAttr("style", style)
		el.CreateAttr("data-class", strconv.Itoa(b.Class))
		if b.Record != nil {
			el.CreateAttr("data-name", b.Record.Name)
		}
	})

	doc.Indent(2)
	return doc.WriteToBytes()
}

// walkIDs visits every descendant of root that carries an id attribute.
func walkIDs(root *etree.Element, fn func(*etree.Element)) {
	for _, el := range root.ChildElements() {
		if el.SelectAttrValue("id", "") != "" {
			fn(el)
		}
		walkIDs(el, fn)
	}
}

// readViewBox: viewBox, затем width/height, затем 800x600.
func readViewBox(root *etree.Element) ViewBox {
	if vb := strings.Fields(strings.ReplaceAll(root.SelectAttrValue("viewBox", ""), ",", " ")); len(vb) == 4 {
		var v [4]float64
		ok := true
		for i, s := range vb {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				ok = false
				break
			}
			v[i] = f
		}
		if ok {
			return ViewBox{X: v[0], Y: v[1], W: v[2], H: v[3]}
		}
	}
	w, okW := parseLength(root.SelectAttrValue("width", ""))
	h, okH := parseLength(root.SelectAttrValue("height", ""))
	if !okW {
		w = 800
	}
	if !okH {
		h = 600
	}
	return ViewBox{W: w, H: h}
}

func parseLength(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// mergeStyle overrides or appends properties, keeping the rest in order.
func mergeStyle(style string, props [][2]string) string {
	type kv struct{ k, v string }
	var out []kv
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out = append(out, kv{k, strings.TrimSpace(v)})
	}
	for _, p := range props {
		replaced := false
		for i := range out {
			if out[i].k == p[0] {
				out[i].v = p[1]
				replaced = true
			}
		}
		if !replaced {
			out = append(out, kv{p[0], p[1]})
		}
	}
	parts := make([]string, len(out))
	for i, d := range out {
		parts[i] = d.k + ":" + d.v
	}
	return strings.Join(parts, ";")
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
