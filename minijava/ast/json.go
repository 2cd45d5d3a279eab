package ast

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Pos      *jsonPos    `json:"pos,omitempty"`
	Detail   string      `json:"detail,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonPos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p *Package) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(p))
}

// JSON converts any subtree to its JSON form.
func JSON(n Node) ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func toJSON(n Node) *jsonNode {
	kind, detail := Label(n)
	jn := &jsonNode{
		Kind:   kind,
		Detail: detail,
	}

	if pos := n.Pos(); pos.IsValid() {
		jn.Pos = &jsonPos{Line: pos.Line, Column: pos.Column}
	}

	children := Children(n)
	if len(children) > 0 {
		jn.Children = make([]*jsonNode, len(children))
		for i, child := range children {
			jn.Children[i] = toJSON(child)
		}
	}

	return jn
}
