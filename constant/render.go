package constant

// Terminal Projection
const (
	// CellsPerUnitX is terminal columns per world unit
	CellsPerUnitX = 3.0

	// CellsPerUnitY is terminal rows per world unit; cells are roughly twice as tall as wide
	CellsPerUnitY = 1.5

	// StatusBarHeight is the rows reserved at the bottom of the screen
	StatusBarHeight = 1

	// TrailBrightAlpha separates bright trail glyphs from faint ones
	TrailBrightAlpha = 0.5
)
