package domain

// ConfigLoader reads session configuration from a path.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// SampleGenerator produces n random but valid products with distinct codes.
type SampleGenerator interface {
	Generate(n int) []Product
}
