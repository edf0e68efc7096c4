package printer

import "bytes"

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment (ESC a n)
const (
	AlignLeft   = 0x00
	AlignCenter = 0x01
)

// Print mode (ESC ! n)
const (
	ModeNormal       = 0x00
	ModeEmphasized   = 0x10
	ModeDoubleHeight = 0x20
	ModeDouble       = 0x30 // Double height + double width
)

// LineRole is the structural role of a rendered receipt line. The encoder
// styles lines by role, so the renderer never has to agree with the encoder
// on text content.
type LineRole int

const (
	RoleBusinessName LineRole = iota
	RoleAddress
	RoleBanner
	RoleMeta
	RoleSeparator
	RoleItem
	RoleTotal
	RoleAmountDue
	RolePayment
	RoleFooter
)

// Line is one rendered receipt line: raw UTF-8 text plus its role.
type Line struct {
	Role LineRole
	Text string
}

// lineStyle is the alignment and print mode a role maps to.
type lineStyle struct {
	align byte
	mode  byte
}

// styleFor returns the device style for a line role.
func styleFor(role LineRole) lineStyle {
	switch role {
	case RoleBusinessName:
		return lineStyle{AlignCenter, ModeDouble}
	case RoleBanner:
		return lineStyle{AlignCenter, ModeDoubleHeight}
	case RoleAddress, RoleFooter:
		return lineStyle{AlignCenter, ModeNormal}
	case RoleAmountDue:
		return lineStyle{AlignLeft, ModeEmphasized}
	default:
		return lineStyle{AlignLeft, ModeNormal}
	}
}

// Encoder turns tagged receipt lines into a single ESC/POS byte stream.
// Alignment and print-mode commands are emitted only when the running state
// changes, so consecutive lines of the same class carry no redundant codes.
type Encoder struct {
	feedLines int
}

// NewEncoder creates an encoder. feedLines is how many lines the printer
// feeds before cutting, so the cut lands below the footer.
func NewEncoder(feedLines int) *Encoder {
	if feedLines <= 0 {
		feedLines = 4
	}
	return &Encoder{feedLines: feedLines}
}

// Encode builds the full job: initialize, the styled lines, trailing feed
// and a full cut. Text bytes pass through untouched so multi-byte characters
// in item or customer names survive transmission intact.
func (e *Encoder) Encode(lines []Line) []byte {
	var buf bytes.Buffer

	// ESC @ resets the printer to left alignment, normal mode.
	buf.Write([]byte{ESC, '@'})
	state := lineStyle{AlignLeft, ModeNormal}

	for _, line := range lines {
		want := styleFor(line.Role)
		if want.align != state.align {
			buf.Write([]byte{ESC, 'a', want.align})
			state.align = want.align
		}
		if want.mode != state.mode {
			buf.Write([]byte{ESC, '!', want.mode})
			state.mode = want.mode
		}
		buf.WriteString(line.Text)
		buf.WriteByte(LF)
	}

	buf.Write([]byte{ESC, 'd', byte(e.feedLines)})
	buf.Write([]byte{GS, 'V', 0x01})
	return buf.Bytes()
}

// EncodeChunked encodes the lines and splits the stream for transports with
// a maximum payload size per write. Boundaries fall only between whole lines
// (or between a line and the init/trailer blocks), never inside a multi-byte
// rune or a control pair. A single line longer than maxChunk becomes its own
// oversized chunk rather than being split.
func (e *Encoder) EncodeChunked(lines []Line, maxChunk int) [][]byte {
	if maxChunk <= 0 {
		return [][]byte{e.Encode(lines)}
	}

	var pieces [][]byte
	pieces = append(pieces, []byte{ESC, '@'})
	state := lineStyle{AlignLeft, ModeNormal}

	for _, line := range lines {
		var piece bytes.Buffer
		want := styleFor(line.Role)
		if want.align != state.align {
			piece.Write([]byte{ESC, 'a', want.align})
			state.align = want.align
		}
		if want.mode != state.mode {
			piece.Write([]byte{ESC, '!', want.mode})
			state.mode = want.mode
		}
		piece.WriteString(line.Text)
		piece.WriteByte(LF)
		pieces = append(pieces, piece.Bytes())
	}

	pieces = append(pieces, []byte{ESC, 'd', byte(e.feedLines)})
	pieces = append(pieces, []byte{GS, 'V', 0x01})

	var chunks [][]byte
	var current []byte
	for _, piece := range pieces {
		if len(current) > 0 && len(current)+len(piece) > maxChunk {
			chunks = append(chunks, current)
			current = nil
		}
		current = append(current, piece...)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
