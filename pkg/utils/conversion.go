package utils

// ConvertToFloat32 narrows the float64 vectors some embedding APIs return to
// the float32 layout the vector index stores.
func ConvertToFloat32(f []float64) []float32 {
	out := make([]float32, len(f))
	for i, v := range f {
		out[i] = float32(v)
	}
	return out
}
