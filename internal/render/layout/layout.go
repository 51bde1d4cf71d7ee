package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	width := rect.Dx()
	if leftWidthPx < 0 {
		leftWidthPx = 0
	}
	if leftWidthPx > width {
		leftWidthPx = width
	}
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	height := rect.Dy()
	if topHeightPx < 0 {
		topHeightPx = 0
	}
	if topHeightPx > height {
		topHeightPx = height
	}
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// FitSquare returns the largest square that fits into rect, anchored at the top-left.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	if size < 0 {
		size = 0
	}
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+size, rect.Min.Y+size)
}

// Center returns a rectangle of size (widthPx,heightPx) centered in rect.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// Stack slices rect into consecutive rows of rowHeightPx separated by gapPx,
// stopping when the next row would not fit.
func Stack(rect image.Rectangle, rowHeightPx, gapPx int) []image.Rectangle {
	rect = Normalize(rect)
	if rowHeightPx <= 0 {
		return nil
	}
	var rows []image.Rectangle
	for y := rect.Min.Y; y+rowHeightPx <= rect.Max.Y; y += rowHeightPx + gapPx {
		rows = append(rows, image.Rect(rect.Min.X, y, rect.Max.X, y+rowHeightPx))
	}
	return rows
}

// Columns splits rect into n equal columns separated by gapPx. The last
// column absorbs any remainder.
func Columns(rect image.Rectangle, n, gapPx int) []image.Rectangle {
	rect = Normalize(rect)
	if n <= 0 {
		return nil
	}
	width := (rect.Dx() - gapPx*(n-1)) / n
	if width < 0 {
		width = 0
	}
	cols := make([]image.Rectangle, n)
	x := rect.Min.X
	for i := 0; i < n; i++ {
		right := x + width
		if i == n-1 {
			right = rect.Max.X
		}
		cols[i] = image.Rect(x, rect.Min.Y, right, rect.Max.Y)
		x = right + gapPx
	}
	return cols
}
