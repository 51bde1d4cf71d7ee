package render

const (
	// DefaultCanvasMaxSide bounds the longest side of the logical canvas; the
	// framebuffer is filled by scaling the canvas up.
	DefaultCanvasMaxSide = 1280

	DefaultFPS = 30

	// DefaultTextSize is used when TextStyle.Size is 0.
	DefaultTextSize = 28

	// maxMarqueeFaces bounds the number of cached marquee glyph sets.
	maxMarqueeFaces = 6
)

// CanvasSize scales a device size down so its longest side is at most maxSide,
// preserving the aspect ratio.
func CanvasSize(deviceWidth, deviceHeight, maxSide int) (int, int) {
	if deviceWidth <= 0 || deviceHeight <= 0 {
		return 0, 0
	}
	if maxSide <= 0 {
		maxSide = DefaultCanvasMaxSide
	}
	longest := deviceWidth
	if deviceHeight > longest {
		longest = deviceHeight
	}
	if longest <= maxSide {
		return deviceWidth, deviceHeight
	}
	width := deviceWidth * maxSide / longest
	height := deviceHeight * maxSide / longest
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
