package sndisplay

import "fmt"

// Detector dimensions
const (
	N_SIDES = 2

	MW_COLUMNS = 20
	MW_ROWS    = 13
	XW_WALLS   = 2
	XW_COLUMNS = 2
	XW_ROWS    = 16
	GV_WALLS   = 2
	GV_COLUMNS = 16

	GG_ROWS   = 113
	GG_LAYERS = 9
)

// Flat OM index ranges: main wall [0,520), x-wall [520,648), gamma veto [648,712).
// Cells are numbered [0,2034).
const (
	MW_OFFSET = 0
	XW_OFFSET = MW_OFFSET + N_SIDES*MW_COLUMNS*MW_ROWS
	GV_OFFSET = XW_OFFSET + N_SIDES*XW_WALLS*XW_COLUMNS*XW_ROWS
	N_OMS     = GV_OFFSET + N_SIDES*GV_WALLS*GV_COLUMNS

	N_CELLS = N_SIDES * GG_ROWS * GG_LAYERS
)

type OmKind int

const (
	MainWall OmKind = iota
	XWall
	GammaVeto
)

func (k OmKind) String() string {
	switch k {
	case MainWall:
		return "main wall"
	case XWall:
		return "x-wall"
	case GammaVeto:
		return "gamma veto"
	default:
		return "unknown"
	}
}

// OmID is the physical identity of an optical module. The set of
// implementations is closed: MainWallID, XWallID and GVetoID.
type OmID interface {
	Kind() OmKind
	String() string
	isOmID()
}

type MainWallID struct {
	Side   int
	Column int
	Row    int
}

type XWallID struct {
	Side   int
	Wall   int
	Column int
	Row    int
}

type GVetoID struct {
	Side   int
	Wall   int
	Column int
}

func (MainWallID) Kind() OmKind { return MainWall }
func (XWallID) Kind() OmKind    { return XWall }
func (GVetoID) Kind() OmKind    { return GammaVeto }

func (MainWallID) isOmID() {}
func (XWallID) isOmID()    {}
func (GVetoID) isOmID()    {}

func (id MainWallID) String() string {
	return fmt.Sprintf("M:%d.%02d.%02d", id.Side, id.Column, id.Row)
}

func (id XWallID) String() string {
	return fmt.Sprintf("X:%d.%d.%d.%02d", id.Side, id.Wall, id.Column, id.Row)
}

func (id GVetoID) String() string {
	return fmt.Sprintf("G:%d.%d.%02d", id.Side, id.Wall, id.Column)
}

type CellID struct {
	Side  int
	Row   int
	Layer int
}

func (id CellID) String() string {
	return fmt.Sprintf("GG:%d.%03d.%d", id.Side, id.Row, id.Layer)
}

func checkField(family string, field string, value int, max int) error {
	if value < 0 || value >= max {
		return &ErrInvalidIdentifier{Family: family, Field: field, Value: value}
	}
	return nil
}

// EncodeOM returns the flat OM number of a physical OM identifier.
func EncodeOM(id OmID) (int, error) {
	switch om := id.(type) {
	case MainWallID:
		if err := firstError(
			checkField("main wall", "side", om.Side, N_SIDES),
			checkField("main wall", "column", om.Column, MW_COLUMNS),
			checkField("main wall", "row", om.Row, MW_ROWS)); err != nil {
			return -1, err
		}
		return MW_OFFSET + om.Side*MW_COLUMNS*MW_ROWS + om.Column*MW_ROWS + om.Row, nil
	case XWallID:
		if err := firstError(
			checkField("x-wall", "side", om.Side, N_SIDES),
			checkField("x-wall", "wall", om.Wall, XW_WALLS),
			checkField("x-wall", "column", om.Column, XW_COLUMNS),
			checkField("x-wall", "row", om.Row, XW_ROWS)); err != nil {
			return -1, err
		}
		return XW_OFFSET + om.Side*XW_WALLS*XW_COLUMNS*XW_ROWS + om.Wall*XW_COLUMNS*XW_ROWS +
			om.Column*XW_ROWS + om.Row, nil
	case GVetoID:
		if err := firstError(
			checkField("gamma veto", "side", om.Side, N_SIDES),
			checkField("gamma veto", "wall", om.Wall, GV_WALLS),
			checkField("gamma veto", "column", om.Column, GV_COLUMNS)); err != nil {
			return -1, err
		}
		return GV_OFFSET + om.Side*GV_WALLS*GV_COLUMNS + om.Wall*GV_COLUMNS + om.Column, nil
	}
	return -1, &ErrInvalidIdentifier{Family: "om", Field: "kind", Value: -1}
}

// DecodeOM is the inverse of EncodeOM.
func DecodeOM(omNum int) (OmID, error) {
	switch {
	case omNum < 0 || omNum >= N_OMS:
		return nil, &ErrInvalidIndex{Family: "om", Index: omNum}
	case omNum < XW_OFFSET:
		n := omNum - MW_OFFSET
		return MainWallID{
			Side:   n / (MW_COLUMNS * MW_ROWS),
			Column: (n % (MW_COLUMNS * MW_ROWS)) / MW_ROWS,
			Row:    n % MW_ROWS,
		}, nil
	case omNum < GV_OFFSET:
		n := omNum - XW_OFFSET
		return XWallID{
			Side:   n / (XW_WALLS * XW_COLUMNS * XW_ROWS),
			Wall:   (n % (XW_WALLS * XW_COLUMNS * XW_ROWS)) / (XW_COLUMNS * XW_ROWS),
			Column: (n % (XW_COLUMNS * XW_ROWS)) / XW_ROWS,
			Row:    n % XW_ROWS,
		}, nil
	default:
		n := omNum - GV_OFFSET
		return GVetoID{
			Side:   n / (GV_WALLS * GV_COLUMNS),
			Wall:   (n % (GV_WALLS * GV_COLUMNS)) / GV_COLUMNS,
			Column: n % GV_COLUMNS,
		}, nil
	}
}

// EncodeCell returns the flat cell number of a drift cell.
func EncodeCell(id CellID) (int, error) {
	if err := firstError(
		checkField("cell", "side", id.Side, N_SIDES),
		checkField("cell", "row", id.Row, GG_ROWS),
		checkField("cell", "layer", id.Layer, GG_LAYERS)); err != nil {
		return -1, err
	}
	return id.Side*GG_ROWS*GG_LAYERS + id.Row*GG_LAYERS + id.Layer, nil
}

func DecodeCell(cellNum int) (CellID, error) {
	if cellNum < 0 || cellNum >= N_CELLS {
		return CellID{}, &ErrInvalidIndex{Family: "cell", Index: cellNum}
	}
	return CellID{
		Side:  cellNum / (GG_ROWS * GG_LAYERS),
		Row:   (cellNum % (GG_ROWS * GG_LAYERS)) / GG_LAYERS,
		Layer: cellNum % GG_LAYERS,
	}, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
