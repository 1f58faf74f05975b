package sample

// Sample describes one timing value read from a benchmark report.
type Sample struct {
	Name  string
	Index int
	Time  float64
}
