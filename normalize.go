package onvif

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/juju/errors"
)

// node wraps a raw response element and keeps its path for error messages.
// Every accessor distinguishes required from optional content: a missing
// required child is an error, a missing optional one is nil.
type node struct {
	el   *etree.Element
	path string
}

func newNode(el *etree.Element) node {
	return node{el: el, path: el.Tag}
}

func (n node) at(name string) string {
	return n.path + "/" + name
}

// child returns the optional child element name
func (n node) child(name string) (node, bool) {
	c := n.el.SelectElement(name)
	if c == nil {
		return node{}, false
	}
	return node{el: c, path: n.at(name)}, true
}

// must returns the required child element name
func (n node) must(name string) (node, error) {
	c, ok := n.child(name)
	if !ok {
		return node{}, errors.NotFoundf("required element %s", n.at(name))
	}
	return c, nil
}

// children returns every name child, whether the device sent one or many
func (n node) children(name string) []node {
	var out []node
	for i, c := range n.el.SelectElements(name) {
		out = append(out, node{el: c, path: n.at(name) + "[" + strconv.Itoa(i) + "]"})
	}
	return out
}

func (n node) text() string {
	return strings.TrimSpace(n.el.Text())
}

// str returns the required text of child name
func (n node) str(name string) (string, error) {
	c, err := n.must(name)
	if err != nil {
		return "", err
	}
	return c.text(), nil
}

// optStr returns the text of child name, nil when absent or empty
func (n node) optStr(name string) *string {
	c, ok := n.child(name)
	if !ok {
		return nil
	}
	v := c.text()
	if v == "" {
		return nil
	}
	return &v
}

func (n node) int(name string) (int, error) {
	s, err := n.str(name)
	if err != nil {
		return 0, err
	}
	return parseInt(n.at(name), s)
}

func (n node) optInt(name string) (*int, error) {
	s := n.optStr(name)
	if s == nil {
		return nil, nil
	}
	v, err := parseInt(n.at(name), *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (n node) float(name string) (float64, error) {
	s, err := n.str(name)
	if err != nil {
		return 0, err
	}
	return parseFloat(n.at(name), s)
}

func (n node) optFloat(name string) (*float64, error) {
	s := n.optStr(name)
	if s == nil {
		return nil, nil
	}
	v, err := parseFloat(n.at(name), *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (n node) bool(name string) (bool, error) {
	s, err := n.str(name)
	if err != nil {
		return false, err
	}
	return parseBool(n.at(name), s)
}

func (n node) optBool(name string) (*bool, error) {
	s := n.optStr(name)
	if s == nil {
		return nil, nil
	}
	v, err := parseBool(n.at(name), *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// attr returns the required attribute name
func (n node) attr(name string) (string, error) {
	a := n.el.SelectAttr(name)
	if a == nil {
		return "", errors.NotFoundf("required attribute %s@%s", n.path, name)
	}
	return strings.TrimSpace(a.Value), nil
}

func (n node) optAttr(name string) *string {
	a := n.el.SelectAttr(name)
	if a == nil {
		return nil
	}
	v := strings.TrimSpace(a.Value)
	return &v
}

func (n node) intAttr(name string) (int, error) {
	s, err := n.attr(name)
	if err != nil {
		return 0, err
	}
	return parseInt(n.path+"@"+name, s)
}

func (n node) optIntAttr(name string) (*int, error) {
	s := n.optAttr(name)
	if s == nil {
		return nil, nil
	}
	v, err := parseInt(n.path+"@"+name, *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (n node) floatAttr(name string) (float64, error) {
	s, err := n.attr(name)
	if err != nil {
		return 0, err
	}
	return parseFloat(n.path+"@"+name, s)
}

func (n node) optFloatAttr(name string) (*float64, error) {
	s := n.optAttr(name)
	if s == nil {
		return nil, nil
	}
	v, err := parseFloat(n.path+"@"+name, *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (n node) optBoolAttr(name string) (*bool, error) {
	s := n.optAttr(name)
	if s == nil {
		return nil, nil
	}
	v, err := parseBool(n.path+"@"+name, *s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// optExtension serializes the content of an opaque Extension child
func (n node) optExtension(name string) *string {
	c, ok := n.child(name)
	if !ok {
		return nil
	}
	s := c.innerXML()
	return &s
}

// innerXML renders the element content without the element itself
func (n node) innerXML() string {
	var b strings.Builder
	for _, t := range n.el.Child {
		switch v := t.(type) {
		case *etree.Element:
			doc := etree.NewDocument()
			doc.SetRoot(v.Copy())
			s, err := doc.WriteToString()
			if err == nil {
				b.WriteString(s)
			}
		case *etree.CharData:
			b.WriteString(strings.TrimSpace(v.Data))
		}
	}
	return b.String()
}

func parseInt(path, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.NotValidf("integer %q at %s", s, path)
	}
	return v, nil
}

func parseFloat(path, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.NotValidf("number %q at %s", s, path)
	}
	return v, nil
}

// parseBool accepts the xsd:boolean lexical forms
func parseBool(path, s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, errors.NotValidf("boolean %q at %s", s, path)
}

// parseEnum matches s exactly against the allowed values
func parseEnum[T ~string](path, s string, allowed ...T) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errors.NotValidf("value %q at %s", s, path)
}

// enum reads the required child name as one of allowed
func enum[T ~string](n node, name string, allowed ...T) (T, error) {
	s, err := n.str(name)
	if err != nil {
		return "", err
	}
	return parseEnum(n.at(name), s, allowed...)
}

// mapAll normalizes every element of nodes, failing on the first error
func mapAll[T any](nodes []node, fn func(node) (T, error)) ([]T, error) {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		v, err := fn(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// optional applies fn to the child name when it is present
func optional[T any](n node, name string, fn func(node) (T, error)) (*T, error) {
	c, ok := n.child(name)
	if !ok {
		return nil, nil
	}
	v, err := fn(c)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// required applies fn to the child name, which must be present
func required[T any](n node, name string, fn func(node) (T, error)) (T, error) {
	c, err := n.must(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(c)
}
