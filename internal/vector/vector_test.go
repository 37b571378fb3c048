package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Experienced Python developer, 5 years in C++ & Go_lang! I am a-team")
	require.Equal(t, []string{"experienced", "python", "developer", "years", "in", "go_lang", "am", "team"}, got)
}

func TestTokenizeUnicode(t *testing.T) {
	require.Equal(t, []string{"café", "müller", "東京"}, Tokenize("Café MÜLLER, 東京"))
}

func TestTokenizeNumberClasses(t *testing.T) {
	// ² is No and Ⅻ is Nl; both stay inside the token. U+0301 is a
	// combining mark and splits "cafe" from "s".
	require.Equal(t, []string{"x²y", "ⅻth", "cafe"}, Tokenize("x²y Ⅻth cafe\u0301s"))
}

func TestTokenizeEmpty(t *testing.T) {
	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize(" ,. ! a"))
}

func TestFitIDFSmoothing(t *testing.T) {
	sp, vecs := Fit([]string{"go go rust", "go"})
	require.Equal(t, []string{"go", "rust"}, sp.Terms)
	require.Len(t, vecs, 2)

	// go: df=2 -> idf=1; rust: df=1 -> idf=ln(3/2)+1
	rustIDF := math.Log(1.5) + 1
	w0 := []float64{2, rustIDF}
	n0 := math.Hypot(w0[0], w0[1])
	require.InDelta(t, 2/n0, vecs[0][0], 1e-12)
	require.InDelta(t, rustIDF/n0, vecs[0][1], 1e-12)
	require.InDelta(t, 1.0, vecs[1][0], 1e-12)
	require.InDelta(t, 0.0, vecs[1][1], 1e-12)
}

func TestFitEmptyVocabulary(t *testing.T) {
	sp, vecs := Fit([]string{"", "", "!"})
	require.Empty(t, sp.Terms)
	for _, v := range vecs {
		require.Empty(t, v)
		require.Equal(t, 0.0, Norm(v))
	}
}

func TestCosine(t *testing.T) {
	require.InDelta(t, 1.0, Cosine(Vector{1, 2}, Vector{2, 4}), 1e-12)
	require.Equal(t, 0.0, Cosine(Vector{1, 0}, Vector{0, 1}))
	require.Equal(t, 0.0, Cosine(Vector{0, 0}, Vector{1, 1}))
	require.Equal(t, 0.0, Cosine(Vector{}, Vector{}))
	require.Equal(t, 0.0, Cosine(Vector{1}, Vector{1, 2}))
}
