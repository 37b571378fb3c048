package vector

// Cosine returns dot(a,b)/(|a||b|), or 0 when either vector has zero norm.
// The result is clamped to [0,1]; TF-IDF weights are never negative.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) {
		return 0
	}
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	c := dot / (na * nb)
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
