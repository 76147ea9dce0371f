package document

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// NodeKind tells what a Node holds.
type NodeKind int

const (
	DocumentNode NodeKind = iota
	ElementNode
	CharDataNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Node is an element of an order-preserving XML tree. Prefixes and namespace
// declarations are kept as written so that untouched markup round-trips.
type Node struct {
	Kind NodeKind
	// Prefix and Local name an element; Local is the target of a ProcInst.
	Prefix string
	Local  string
	// Space is the resolved namespace URI of an element.
	Space string
	// Attrs keep the attribute prefix in Name.Space.
	Attrs []xml.Attr
	// Data is the text of CharData, Comment, ProcInst and Directive nodes.
	Data     string
	Children []*Node
	Parent   *Node

	scope *nsScope
}

type nsScope struct {
	parent   *nsScope
	prefixes map[string]string
}

func (s *nsScope) lookup(prefix string) string {
	if prefix == "xml" {
		return XMLNamespace
	}
	for ; s != nil; s = s.parent {
		if uri, ok := s.prefixes[prefix]; ok {
			return uri
		}
	}
	return ""
}

func (s *nsScope) prefixFor(uri string) (string, bool) {
	if uri == XMLNamespace {
		return "xml", true
	}
	for cur := s; cur != nil; cur = cur.parent {
		for prefix, u := range cur.prefixes {
			if u == uri && s.lookup(prefix) == uri {
				return prefix, true
			}
		}
	}
	return "", false
}

// ParseXML reads a complete XML part into a tree rooted at a DocumentNode.
func ParseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &Node{Kind: DocumentNode}
	cur := root

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			scope := cur.scope
			var decls map[string]string
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "xmlns":
					if decls == nil {
						decls = make(map[string]string)
					}
					decls[a.Name.Local] = a.Value
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					if decls == nil {
						decls = make(map[string]string)
					}
					decls[""] = a.Value
				}
			}
			if decls != nil {
				scope = &nsScope{parent: scope, prefixes: decls}
			}

			el := &Node{
				Kind:   ElementNode,
				Prefix: t.Name.Space,
				Local:  t.Name.Local,
				Attrs:  append([]xml.Attr(nil), t.Attr...),
				Parent: cur,
				scope:  scope,
			}
			el.Space = scope.lookup(el.Prefix)
			cur.Children = append(cur.Children, el)
			cur = el

		case xml.EndElement:
			if cur.Kind != ElementNode || cur.Local != t.Name.Local || cur.Prefix != t.Name.Space {
				return nil, fmt.Errorf("unexpected end element </%s>", qualified(t.Name.Space, t.Name.Local))
			}
			cur = cur.Parent

		case xml.CharData:
			cur.Children = append(cur.Children, &Node{Kind: CharDataNode, Data: string(t), Parent: cur})

		case xml.Comment:
			cur.Children = append(cur.Children, &Node{Kind: CommentNode, Data: string(t), Parent: cur})

		case xml.ProcInst:
			cur.Children = append(cur.Children, &Node{Kind: ProcInstNode, Local: t.Target, Data: string(t.Inst), Parent: cur})

		case xml.Directive:
			cur.Children = append(cur.Children, &Node{Kind: DirectiveNode, Data: string(t), Parent: cur})
		}
	}

	if cur != root {
		return nil, fmt.Errorf("unclosed element <%s>", qualified(cur.Prefix, cur.Local))
	}
	return root, nil
}

// Encode writes the tree as XML.
func (n *Node) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := n.encode(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// Bytes returns the encoded tree.
func (n *Node) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(w *bufio.Writer) error {
	switch n.Kind {
	case DocumentNode:
		for _, c := range n.Children {
			if err := c.encode(w); err != nil {
				return err
			}
		}
	case ElementNode:
		name := qualified(n.Prefix, n.Local)
		w.WriteByte('<')
		w.WriteString(name)
		for _, a := range n.Attrs {
			w.WriteByte(' ')
			w.WriteString(qualified(a.Name.Space, a.Name.Local))
			w.WriteString(`="`)
			if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
				return err
			}
			w.WriteByte('"')
		}
		if len(n.Children) == 0 {
			w.WriteString("/>")
			return nil
		}
		w.WriteByte('>')
		for _, c := range n.Children {
			if err := c.encode(w); err != nil {
				return err
			}
		}
		w.WriteString("</")
		w.WriteString(name)
		w.WriteByte('>')
	case CharDataNode:
		return escapeCharData(w, n.Data)
	case CommentNode:
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->")
	case ProcInstNode:
		w.WriteString("<?")
		w.WriteString(n.Local)
		if n.Data != "" {
			w.WriteByte(' ')
			w.WriteString(n.Data)
		}
		w.WriteString("?>")
	case DirectiveNode:
		w.WriteString("<!")
		w.WriteString(n.Data)
		w.WriteByte('>')
	}
	return nil
}

// escapeCharData escapes text content. Unlike xml.EscapeText it keeps
// newlines, tabs and quotes literal.
func escapeCharData(w *bufio.Writer, s string) error {
	var err error
	for _, r := range s {
		switch r {
		case '&':
			_, err = w.WriteString("&amp;")
		case '<':
			_, err = w.WriteString("&lt;")
		case '>':
			_, err = w.WriteString("&gt;")
		case '\r':
			_, err = w.WriteString("&#xD;")
		default:
			_, err = w.WriteRune(r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func qualified(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// Is reports whether n is the element {space}local.
func (n *Node) Is(space, local string) bool {
	return n != nil && n.Kind == ElementNode && n.Space == space && n.Local == local
}

// Root returns the first element child of a DocumentNode.
func (n *Node) Root() *Node {
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			return c
		}
	}
	return nil
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first element child named {space}local.
func (n *Node) Child(space, local string) *Node {
	for _, c := range n.Children {
		if c.Is(space, local) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all element children named {space}local.
func (n *Node) ChildrenNamed(space, local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Is(space, local) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant named {space}local in document order.
func (n *Node) Find(space, local string) *Node {
	for _, c := range n.Children {
		if c.Is(space, local) {
			return c
		}
		if found := c.Find(space, local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant named {space}local in document order.
func (n *Node) FindAll(space, local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Is(space, local) {
			out = append(out, c)
		}
		out = append(out, c.FindAll(space, local)...)
	}
	return out
}

// Attr returns the value of the attribute {space}local. An empty space
// matches unprefixed attributes.
func (n *Node) Attr(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local != local {
			continue
		}
		if a.Name.Space == "" && space == "" {
			return a.Value, true
		}
		if a.Name.Space != "" && n.scope.lookup(a.Name.Space) == space {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or adds the attribute {space}local.
func (n *Node) SetAttr(space, local, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local != local {
			continue
		}
		if (space == "" && a.Name.Space == "") || (a.Name.Space != "" && n.scope.lookup(a.Name.Space) == space) {
			n.Attrs[i].Value = value
			return
		}
	}
	prefix := ""
	if space != "" {
		prefix = n.prefixFor(space)
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value})
}

// prefixFor returns the prefix bound to uri in n's scope, declaring one on n
// when the namespace is not in scope.
func (n *Node) prefixFor(uri string) string {
	if prefix, ok := n.scope.prefixFor(uri); ok {
		return prefix
	}
	prefix := "ns" + fmt.Sprint(len(n.Attrs))
	if n.scope == nil || n.scope.parent == nil && n.scope.prefixes == nil {
		n.scope = &nsScope{prefixes: map[string]string{}}
	} else {
		n.scope = &nsScope{parent: n.scope, prefixes: map[string]string{}}
	}
	n.scope.prefixes[prefix] = uri
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Space: "xmlns", Local: prefix}, Value: uri})
	return prefix
}

// NewElement creates a detached element {space}local that resolves names in
// n's scope. Attach it with AppendChild or InsertChild.
func (n *Node) NewElement(space, local string) *Node {
	el := &Node{Kind: ElementNode, Local: local, Space: space, scope: n.scope}
	if space != "" {
		el.Prefix = n.prefixFor(space)
		el.scope = n.scope
	}
	return el
}

// AppendChild attaches c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// InsertChild attaches c at index i of n's children.
func (n *Node) InsertChild(i int, c *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// RemoveChild detaches c from n. It returns the index c had, or -1.
func (n *Node) RemoveChild(c *Node) int {
	i := n.IndexOf(c)
	if i < 0 {
		return -1
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	c.Parent = nil
	return i
}

// IndexOf returns the position of c among n's children, or -1.
func (n *Node) IndexOf(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// Text returns the concatenated character data below n.
func (n *Node) Text() string {
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for _, c := range n.Children {
		switch c.Kind {
		case CharDataNode:
			sb.WriteString(c.Data)
		case ElementNode:
			c.collectText(sb)
		}
	}
}
