package diagram

import "linkroute/geometry"

// Node is a shape in the document that carries ports.
type Node struct {
	ID    string
	Shape Shape

	doc   *Document
	ports []*Port
}

// Bounds returns the bounds of the node's shape.
func (n *Node) Bounds() geometry.Rect {
	return n.Shape.Bounds()
}

// Ports returns the node's ports in creation order.
func (n *Node) Ports() []*Port {
	out := make([]*Port, len(n.ports))
	copy(out, n.ports)
	return out
}

// Port returns the port with the given ID, or nil.
func (n *Node) Port(id string) *Port {
	for _, p := range n.ports {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Links returns every link connected to one of the node's ports, each
// once, in port order.
func (n *Node) Links() []*Link {
	seen := make(map[*Link]bool)
	var out []*Link
	for _, p := range n.ports {
		for _, l := range p.links {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}

func (n *Node) removePort(p *Port) {
	for i, q := range n.ports {
		if q == p {
			n.ports = append(n.ports[:i], n.ports[i+1:]...)
			return
		}
	}
}
