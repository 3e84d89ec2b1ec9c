package theme

type Theme interface {
	// Colours a rating by how hard it is
	RenderRating(rating float32) string
	// Colours a chart meter the same way as a rating of that value
	RenderMeter(meter int) string
	RenderHeader(title string) string
}
