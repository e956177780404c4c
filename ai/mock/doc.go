// Package mock provides test double implementations of AI service interfaces.
//
// The mocks let tests run without an embedding server and give
// controlled, deterministic vectors.
//
// # Usage in Tests
//
//	embedder := mock.NewMockEmbedder()
//	embedder.Vectors["fever"] = []float32{1, 0, 0}
//
//	// Custom behavior injection
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("service down")
//	}
//
//	count := embedder.CallCount()
//
// # Default Behavior
//
// Texts found in Vectors get that vector. Anything else gets a unit-length
// bag-of-words vector: every word hashes to a fixed pseudo-random
// direction and the text's vector is their normalized sum, so texts that
// share words score higher than texts that share none.
package mock
