package sndisplay

// Content holds one value per flat OM number and per flat cell number.
// Zero means no data.
type Content struct {
	OM   [N_OMS]float64
	Cell [N_CELLS]float64
}

func (c *Content) SetOM(omNum int, value float64) error {
	if omNum < 0 || omNum >= N_OMS {
		return &ErrInvalidIndex{Family: "om", Index: omNum}
	}
	c.OM[omNum] = value
	return nil
}

func (c *Content) SetCell(cellNum int, value float64) error {
	if cellNum < 0 || cellNum >= N_CELLS {
		return &ErrInvalidIndex{Family: "cell", Index: cellNum}
	}
	c.Cell[cellNum] = value
	return nil
}

func (c *Content) GetCell(cellNum int) (float64, error) {
	if cellNum < 0 || cellNum >= N_CELLS {
		return 0, &ErrInvalidIndex{Family: "cell", Index: cellNum}
	}
	return c.Cell[cellNum], nil
}

func (c *Content) Reset() {
	c.OM = [N_OMS]float64{}
	c.Cell = [N_CELLS]float64{}
}
