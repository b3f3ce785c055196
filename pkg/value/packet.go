package value

import "evalkit/pkg/ast"

// PacketType names the reason an ExceptionPacket is travelling through an
// error continuation: one of the four non-local control transfers, or a
// generic interpreter/host error (spec.md §3 ExceptionPacket, §7).
type PacketType string

const (
	PacketThrow    PacketType = "ThrowStatement"
	PacketReturn   PacketType = "ReturnStatement"
	PacketBreak    PacketType = "BreakStatement"
	PacketContinue PacketType = "ContinueStatement"
	// PacketError tags interpreter/host errors that are not one of the
	// four user-program control transfers: unbound identifiers, unknown
	// node kinds, unsupported operators/patterns (spec.md §7 item 2).
	PacketError PacketType = "Error"
)

// Packet is the ExceptionPacket of spec.md §3: the sole vehicle for
// non-local control transfer. It never appears as a Value; it only
// travels through an ErrCont.
type Packet struct {
	Type  PacketType
	Value Value
	// Err carries the underlying Go error for PacketError packets (e.g.
	// an *errors.RuntimeError); nil for the four control-transfer types.
	Err error
	// Location is the AST node that raised or last re-raised the packet,
	// attached as it traverses dispatch wrappers (spec.md §3, §7).
	Location ast.Node
	// Label matches a labeled break/continue against its enclosing
	// labeled loop (spec.md §4.2).
	Label string
}

// WithLocation returns a copy of p with Location set, used by the
// dispatcher to stamp a packet with the node currently being unwound
// through, without mutating a packet still referenced elsewhere.
func (p Packet) WithLocation(node ast.Node) Packet {
	p.Location = node
	return p
}

// Cont is the success continuation every CPS evaluator receives.
type Cont func(Value)

// ErrCont is the error continuation every CPS evaluator receives.
type ErrCont func(Packet)
