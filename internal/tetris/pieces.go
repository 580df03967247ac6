package tetris

// Piece identifies one of the seven tetromino shapes.
// The numeric value doubles as the cell color id written into the board.
type Piece uint8

const (
	PieceNone Piece = iota
	PieceI
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// NumPieces is the number of distinct piece shapes.
const NumPieces = 7

// NumRotations is the number of rotation states stored per piece.
const NumRotations = 4

// MaskSize is the side length of a rotation occupancy mask.
const MaskSize = 4

// AllPieces lists the playable pieces in id order.
var AllPieces = [NumPieces]Piece{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

// String returns the conventional single-letter name of the piece.
func (p Piece) String() string {
	switch p {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Valid reports whether p is one of the seven playable pieces.
func (p Piece) Valid() bool {
	return p >= PieceI && p <= PieceZ
}

// Mask is a 4x4 occupancy grid indexed [row][col], row 0 at the top.
type Mask [MaskSize][MaskSize]bool

// XRange is a half-open range [Min, Max) of x offsets a rotation can occupy.
type XRange struct {
	Min int
	Max int
}

// shapes holds the rotation grids as drawn, one string per row.
// Rotation index increases clockwise.
var shapes = [NumPieces][NumRotations][MaskSize]string{
	{ // I
		{"....", "####", "....", "...."},
		{"..#.", "..#.", "..#.", "..#."},
		{"....", "....", "####", "...."},
		{".#..", ".#..", ".#..", ".#.."},
	},
	{ // J
		{"#...", "###.", "....", "...."},
		{".##.", ".#..", ".#..", "...."},
		{"....", "###.", "..#.", "...."},
		{".#..", ".#..", "##..", "...."},
	},
	{ // L
		{"..#.", "###.", "....", "...."},
		{".#..", ".#..", ".##.", "...."},
		{"....", "###.", "#...", "...."},
		{"##..", ".#..", ".#..", "...."},
	},
	{ // O
		{".##.", ".##.", "....", "...."},
		{".##.", ".##.", "....", "...."},
		{".##.", ".##.", "....", "...."},
		{".##.", ".##.", "....", "...."},
	},
	{ // S
		{".##.", "##..", "....", "...."},
		{".#..", ".##.", "..#.", "...."},
		{"....", ".##.", "##..", "...."},
		{"#...", "##..", ".#..", "...."},
	},
	{ // T
		{".#..", "###.", "....", "...."},
		{".#..", ".##.", ".#..", "...."},
		{"....", "###.", ".#..", "...."},
		{".#..", "##..", ".#..", "...."},
	},
	{ // Z
		{"##..", ".##.", "....", "...."},
		{"..#.", ".##.", ".#..", "...."},
		{"....", "##..", ".##.", "...."},
		{".#..", "##..", "#...", "...."},
	},
}

// searchRotations is the number of distinct resting shapes per piece.
// I, S and Z repeat after two rotations and O after one.
var searchRotations = [NumPieces]int{2, 4, 4, 1, 2, 4, 2}

// Immutable process-wide tables, derived once from shapes.
var (
	masks   = buildMasks()
	xRanges = buildXRanges()
)

func buildMasks() [NumPieces][NumRotations]Mask {
	var table [NumPieces][NumRotations]Mask
	for p := range NumPieces {
		for r := range NumRotations {
			for row := range MaskSize {
				for col := range MaskSize {
					table[p][r][row][col] = shapes[p][r][row][col] == '#'
				}
			}
		}
	}
	return table
}

// buildXRanges finds, for every piece and rotation, the x offsets that keep
// all occupied mask columns inside [0, Width).
func buildXRanges() [NumPieces][NumRotations]XRange {
	var table [NumPieces][NumRotations]XRange
	for p := range NumPieces {
		for r := range NumRotations {
			minCol, maxCol := MaskSize, -1
			for row := range MaskSize {
				for col := range MaskSize {
					if !masks[p][r][row][col] {
						continue
					}
					minCol = min(minCol, col)
					maxCol = max(maxCol, col)
				}
			}
			table[p][r] = XRange{Min: -minCol, Max: Width - maxCol}
		}
	}
	return table
}

// MaskOf returns the occupancy mask for a piece in the given rotation.
// The rotation index is reduced modulo NumRotations. An invalid piece has
// an empty mask.
func MaskOf(p Piece, rotation int) Mask {
	if !p.Valid() {
		return Mask{}
	}
	return masks[p-1][normRotation(rotation)]
}

// SearchRotations returns how many rotation states yield distinct placements,
// or 0 for an invalid piece.
func SearchRotations(p Piece) int {
	if !p.Valid() {
		return 0
	}
	return searchRotations[p-1]
}

// XRangeOf returns the legal x offsets for a piece in the given rotation.
// The range is empty for an invalid piece.
func XRangeOf(p Piece, rotation int) XRange {
	if !p.Valid() {
		return XRange{}
	}
	return xRanges[p-1][normRotation(rotation)]
}

func normRotation(rotation int) int {
	r := rotation % NumRotations
	if r < 0 {
		r += NumRotations
	}
	return r
}
