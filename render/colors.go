package render

// Palette
var (
	RgbBackground = RGB{20, 16, 34}   // Deep violet night
	RgbHeadline   = RGB{236, 226, 255} // Pale lilac
	RgbHint       = RGB{130, 120, 160} // Muted lilac
	RgbStageFrame = RGB{120, 96, 200}  // Violet
	RgbStageWave  = RGB{190, 140, 255} // Light violet
	RgbProgress   = RGB{255, 170, 230} // Pink
	RgbIdle       = RGB{170, 150, 220}
	RgbKey        = RGB{235, 232, 245} // Ivory
	RgbKeyText    = RGB{30, 26, 50}
	RgbKeyActive  = RGB{255, 150, 220} // Pressed key glow
	RgbKeyEdge    = RGB{90, 80, 120}
	RgbBGMOn      = RGB{150, 255, 190} // Mint
	RgbBGMOff     = RGB{255, 130, 130} // Soft red
)

// Butterfly body saturation and lightness
const (
	butterflySaturation = 0.96
	butterflyLightness  = 0.68
)
