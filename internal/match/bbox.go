package match

// deriveGeometry unions the polygon vertices of the candidate's words,
// keeping only vertices with both coordinates present. With no survivors
// the candidate produces no record; this is the pipeline's only drop path.
// Returns the envelope as [x, y, width, height] plus the surviving vertices
// in their original order.
func deriveGeometry(words []Word, indices []int) ([4]float64, []Point, bool) {
	var pts []Point
	for _, idx := range indices {
		for _, v := range words[idx].Polygon {
			if v.Valid() {
				pts = append(pts, Point{X: *v.X, Y: *v.Y})
			}
		}
	}
	if len(pts) == 0 {
		return [4]float64{}, nil, false
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return [4]float64{minX, minY, maxX - minX, maxY - minY}, pts, true
}
