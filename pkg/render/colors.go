package render

// Embed colors.
const (
	ColorNeutral = 0xFEFEFE
	ColorSuccess = 0x69F362
	ColorFailure = 0xC45248
	ColorGold    = 0xF1C40F
	ColorPending = 0xE5C13A
)
