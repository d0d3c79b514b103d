// Package headless is an in-memory chart engine and DOM for running a
// chart.Display without a browser.
package headless

import (
	"sync"

	"bitbucket.org/novatechnologies/spychart/chart"
)

var (
	_ chart.Document = new(Document)
	_ chart.Element  = new(Element)
)

type Document struct {
	mu       sync.Mutex
	elements map[string]*Element
}

func NewDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// AddContainer registers a sized element under id.
func (d *Document) AddContainer(id string, width, height float64) *Element {
	el := &Element{tag: "div", id: id, width: width, height: height}
	d.mu.Lock()
	d.elements[id] = el
	d.mu.Unlock()
	return el
}

func (d *Document) GetElementByID(id string) (chart.Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

func (d *Document) CreateElement(tag string) chart.Element {
	return &Element{tag: tag}
}

type Element struct {
	mu        sync.RWMutex
	tag       string
	id        string
	className string
	html      string
	children  []*Element
	width     float64
	height    float64
}

func (e *Element) AppendChild(child chart.Element) {
	el, ok := child.(*Element)
	if !ok {
		return
	}
	e.mu.Lock()
	e.children = append(e.children, el)
	e.mu.Unlock()
}

func (e *Element) SetClassName(name string) {
	e.mu.Lock()
	e.className = name
	e.mu.Unlock()
}

func (e *Element) SetInnerHTML(html string) {
	e.mu.Lock()
	e.html = html
	e.mu.Unlock()
}

func (e *Element) InnerHTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.html
}

func (e *Element) ClientWidth() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.width
}

func (e *Element) ClientHeight() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.height
}

// Resize changes the client size, as a browser reflow would.
func (e *Element) Resize(width, height float64) {
	e.mu.Lock()
	e.width, e.height = width, height
	e.mu.Unlock()
}

func (e *Element) Tag() string {
	return e.tag
}

func (e *Element) ClassName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.className
}

func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*Element(nil), e.children...)
}

// FindByClass returns descendants with the class name in document order.
func (e *Element) FindByClass(name string) []*Element {
	var found []*Element
	for _, child := range e.Children() {
		if child.ClassName() == name {
			found = append(found, child)
		}
		found = append(found, child.FindByClass(name)...)
	}
	return found
}
