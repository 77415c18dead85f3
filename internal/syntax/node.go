package syntax

// NodeID indexes Tree.Nodes; NoNode is the zero value.
type NodeID uint32

// TokIdx indexes Tree.Tokens.
type TokIdx uint32

const (
	NoNode NodeID = 0
	NoTok  TokIdx = ^TokIdx(0)
)

func (id NodeID) IsValid() bool { return id != NoNode }
func (i TokIdx) IsValid() bool  { return i != NoTok }

// Node is an immutable syntax node covering the tokens First..Last (inclusive).
type Node struct {
	Kind     NodeKind
	First    TokIdx
	Last     TokIdx
	Name     TokIdx // identifier that names the declaration, NoTok otherwise
	Open     TokIdx // '{' that opens the body, NoTok otherwise
	Children []NodeID
}
