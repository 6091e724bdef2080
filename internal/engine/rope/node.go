package rope

import "strings"

// Tree shape constants.
const (
	MaxChildren      = 8
	MaxChunksPerLeaf = 4
)

// Node is a node of the rope's B+ tree. Leaves (height 0) hold chunks;
// internal nodes hold children and cache each child's summary.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{summary: TextSummary{Flags: FlagASCII}}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	n.summary = TextSummary{Flags: FlagASCII}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.Summary())
	}
	return n
}

func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	n := &Node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
		summary:        TextSummary{Flags: FlagASCII},
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length of the subtree.
func (n *Node) Len() ByteOffset {
	return n.summary.Bytes
}

func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the text of [start, end) to sb.
func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	var offset ByteOffset
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cEnd := offset + ByteOffset(c.Len())
			if cEnd > start && offset < end {
				lo := ByteOffset(0)
				if start > offset {
					lo = start - offset
				}
				hi := ByteOffset(c.Len())
				if end < cEnd {
					hi = end - offset
				}
				sb.WriteString(c.data[lo:hi])
			}
			if cEnd >= end {
				return
			}
			offset = cEnd
		}
		return
	}

	for i, child := range n.children {
		cEnd := offset + n.childSummaries[i].Bytes
		if cEnd > start && offset < end {
			lo := ByteOffset(0)
			if start > offset {
				lo = start - offset
			}
			hi := n.childSummaries[i].Bytes
			if end < cEnd {
				hi = end - offset
			}
			child.appendRange(sb, lo, hi)
		}
		if cEnd >= end {
			return
		}
		offset = cEnd
	}
}

// split returns nodes holding [0, offset) and [offset, len).
func (n *Node) split(offset ByteOffset) (*Node, *Node) {
	if offset == 0 {
		return newLeafNode(), n
	}
	if offset >= n.Len() {
		return n, newLeafNode()
	}

	if n.IsLeaf() {
		var left, right []Chunk
		var pos ByteOffset
		for _, c := range n.chunks {
			cLen := ByteOffset(c.Len())
			switch {
			case pos+cLen <= offset:
				left = append(left, c)
			case pos >= offset:
				right = append(right, c)
			default:
				l, r := c.Split(int(offset - pos))
				left = append(left, l)
				right = append(right, r)
			}
			pos += cLen
		}
		return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
	}

	var left, right []*Node
	var pos ByteOffset
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		switch {
		case pos+cLen <= offset:
			left = append(left, child)
		case pos >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - pos)
			if l.Len() > 0 {
				left = append(left, l)
			}
			if r.Len() > 0 {
				right = append(right, r)
			}
		}
		pos += cLen
	}
	return buildNodeFromChildren(left), buildNodeFromChildren(right)
}

// buildNodeFromChildren groups children into a balanced tree.
// Children may differ in height after a split; shorter ones are wrapped.
func buildNodeFromChildren(children []*Node) *Node {
	switch len(children) {
	case 0:
		return newLeafNode()
	case 1:
		return children[0]
	}

	var height uint8
	for _, c := range children {
		if c.height > height {
			height = c.height
		}
	}
	for i, c := range children {
		for c.height < height {
			c = newInternalNode([]*Node{c})
		}
		children[i] = c
	}

	for len(children) > MaxChildren {
		parents := make([]*Node, 0, len(children)/MaxChildren+1)
		for i := 0; i < len(children); i += MaxChildren {
			end := min(i+MaxChildren, len(children))
			parents = append(parents, newInternalNode(children[i:end:end]))
		}
		children = parents
	}
	return newInternalNode(children)
}

// concat joins two nodes into one tree.
func concat(left, right *Node) *Node {
	if left == nil || left.Len() == 0 {
		if right == nil {
			return newLeafNode()
		}
		return right
	}
	if right == nil || right.Len() == 0 {
		return left
	}

	if left.IsLeaf() && right.IsLeaf() {
		if len(left.chunks)+len(right.chunks) <= MaxChunksPerLeaf {
			chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
			chunks = append(chunks, left.chunks...)
			chunks = append(chunks, right.chunks...)
			return newLeafNodeWithChunks(chunks)
		}
		return newInternalNode([]*Node{left, right})
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}

	all := make([]*Node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	return buildNodeFromChildren(all)
}

// byteToChar returns the index of the character containing byte offset.
func (n *Node) byteToChar(offset ByteOffset) uint64 {
	if offset >= n.Len() {
		return n.summary.Chars
	}
	if n.summary.IsASCII() {
		return uint64(offset)
	}

	var chars uint64
	if n.IsLeaf() {
		for _, c := range n.chunks {
			cLen := ByteOffset(c.Len())
			if offset < cLen {
				return chars + charsBefore(c.data, int(offset))
			}
			offset -= cLen
			chars += c.summary.Chars
		}
		return chars
	}

	for i, child := range n.children {
		s := n.childSummaries[i]
		if offset < s.Bytes {
			return chars + child.byteToChar(offset)
		}
		offset -= s.Bytes
		chars += s.Chars
	}
	return chars
}

// charToByte returns the byte offset at which character idx starts.
func (n *Node) charToByte(idx uint64) ByteOffset {
	if idx >= n.summary.Chars {
		return n.Len()
	}
	if n.summary.IsASCII() {
		return ByteOffset(idx)
	}

	var offset ByteOffset
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if idx < c.summary.Chars {
				return offset + ByteOffset(byteOfChar(c.data, idx))
			}
			idx -= c.summary.Chars
			offset += ByteOffset(c.Len())
		}
		return offset
	}

	for i, child := range n.children {
		s := n.childSummaries[i]
		if idx < s.Chars {
			return offset + child.charToByte(idx)
		}
		idx -= s.Chars
		offset += s.Bytes
	}
	return offset
}

// offsetAfterNewline returns the byte offset just past the k-th newline
// (1-indexed), or the subtree length if there are fewer than k.
func (n *Node) offsetAfterNewline(k uint32) ByteOffset {
	var offset ByteOffset
	if n.IsLeaf() {
		for _, c := range n.chunks {
			if k <= c.summary.Lines {
				return offset + ByteOffset(FindNthNewline(c.data, k)+1)
			}
			k -= c.summary.Lines
			offset += ByteOffset(c.Len())
		}
		return offset
	}

	for i, child := range n.children {
		s := n.childSummaries[i]
		if k <= s.Lines {
			return offset + child.offsetAfterNewline(k)
		}
		k -= s.Lines
		offset += s.Bytes
	}
	return offset
}

// byteAt returns the byte at offset, which must be < n.Len().
func (n *Node) byteAt(offset ByteOffset) byte {
	for !n.IsLeaf() {
		i := 0
		for ; i < len(n.children)-1 && offset >= n.childSummaries[i].Bytes; i++ {
			offset -= n.childSummaries[i].Bytes
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if offset < ByteOffset(c.Len()) {
			return c.data[offset]
		}
		offset -= ByteOffset(c.Len())
	}
	return 0
}
