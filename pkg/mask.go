package sndisplay

const (
	N_COMMISSIONING_AREAS = 8
	AREA_ROWS             = 14
)

// crate boundaries along the tracker rows
var crateRows = [...]int{0, 38, 75, 113}

// RowRange is the half open row interval [First, Last).
type RowRange struct {
	First int
	Last  int
}

func (r RowRange) Contains(row int) bool {
	return row >= r.First && row < r.Last
}

// CommissioningArea returns the rows cabled during the tracker
// commissioning of the given area. Areas from 4 on are shifted by the
// central row.
func CommissioningArea(area int) (RowRange, error) {
	if area < 0 || area >= N_COMMISSIONING_AREAS {
		return RowRange{}, &ErrInvalidMask{Kind: "commissioning area", Value: area, Max: N_COMMISSIONING_AREAS - 1}
	}
	first := AREA_ROWS * area
	if area >= 4 {
		first++
	}
	return RowRange{First: first, Last: first + AREA_ROWS}, nil
}

func Crate(crate int) (RowRange, error) {
	if crate < 0 || crate >= len(crateRows)-1 {
		return RowRange{}, &ErrInvalidMask{Kind: "crate", Value: crate, Max: len(crateRows) - 2}
	}
	return RowRange{First: crateRows[crate], Last: crateRows[crate+1]}, nil
}
