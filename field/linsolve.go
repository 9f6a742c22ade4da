package field

// SystemInfo is the outcome of a linear solve.
type SystemInfo int

const (
	Consistent SystemInfo = iota
	UnderDetermined
	Inconsistent
)

func (s SystemInfo) String() string {
	switch s {
	case Consistent:
		return "consistent"
	case UnderDetermined:
		return "under-determined"
	case Inconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

// SolveLinear solves lhs * x = rhs over a field by Gaussian elimination with row
// reduction. lhs has one row per equation and may have more rows than columns.
// Neither lhs nor rhs is modified.
//
// An inconsistent system is reported before an under-determined one, so a caller
// that retries with more equations never retries a system that has no solution.
func SolveLinear[E any](r Ring[E], lhs [][]E, rhs []E) ([]E, SystemInfo) {
	rows := len(lhs)
	if rows == 0 {
		return nil, UnderDetermined
	}

	cols := len(lhs[0])

	// augmented matrix [A|b]
	matrix := make([][]E, rows)
	for i := range matrix {
		matrix[i] = make([]E, cols+1)
		copy(matrix[i], lhs[i])
		matrix[i][cols] = rhs[i]
	}

	pivotCols := make([]int, 0, cols)
	row := 0

	for col := 0; col < cols && row < rows; col++ {
		pivotRow := -1
		for i := row; i < rows; i++ {
			if !r.IsZero(matrix[i][col]) {
				pivotRow = i
				break
			}
		}

		if pivotRow == -1 {
			continue
		}

		matrix[row], matrix[pivotRow] = matrix[pivotRow], matrix[row]

		pivotInv := r.Reciprocal(matrix[row][col])
		for j := col; j <= cols; j++ {
			matrix[row][j] = r.Mul(matrix[row][j], pivotInv)
		}

		// eliminate above and below
		for i := 0; i < rows; i++ {
			if i == row || r.IsZero(matrix[i][col]) {
				continue
			}

			factor := matrix[i][col]
			for j := col; j <= cols; j++ {
				matrix[i][j] = r.Sub(matrix[i][j], r.Mul(factor, matrix[row][j]))
			}
		}

		pivotCols = append(pivotCols, col)
		row++
	}

	// rows past the rank must read 0 = 0.
	for i := row; i < rows; i++ {
		if !r.IsZero(matrix[i][cols]) {
			return nil, Inconsistent
		}
	}

	if len(pivotCols) < cols {
		return nil, UnderDetermined
	}

	solution := make([]E, cols)
	for i, col := range pivotCols {
		solution[col] = matrix[i][cols]
	}

	return solution, Consistent
}
