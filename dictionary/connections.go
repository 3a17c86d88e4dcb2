package dictionary

// connectionMatrix is the R×C table of signed 16-bit transition costs,
// stored row-major and flat (trans[l*cols+r]) rather than as a slice of
// slices, so it can be mmap'd directly as one contiguous run of int16s.
type connectionMatrix struct {
	rows, cols int
	trans      []int16
}

func (m *connectionMatrix) cost(leftID, rightID uint16) (int16, error) {
	if int(leftID) >= m.rows || int(rightID) >= m.cols {
		return 0, &InvalidConnectionIDError{LeftID: leftID, RightID: rightID}
	}
	return m.trans[int(leftID)*m.cols+int(rightID)], nil
}
