package shop

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"
)

const topResults = 5

// SimilarityHit es un producto puntuado contra el vector de consulta
type SimilarityHit struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Score float64 `json:"score"`
}

// RankBySimilarity genera un vector de consulta aleatorio y devuelve los 5
// productos más parecidos. Simula una búsqueda vectorial: en producción se
// usaría Atlas Vector Search; aquí es un escaneo completo del catálogo.
func (s *Service) RankBySimilarity(ctx context.Context) []SimilarityHit {
	return s.RankAgainst(ctx, s.randomVector(EmbeddingDim))
}

// RankAgainst puntúa todo el catálogo contra un vector de consulta dado.
// La puntuación es la similitud coseno expresada como porcentaje con un
// decimal. El orden es estable: a igual puntuación gana el orden de catálogo.
func (s *Service) RankAgainst(ctx context.Context, query []float64) []SimilarityHit {
	products, err := s.products.List(ctx, 0)
	if err != nil {
		s.log.Error("similarity: product scan failed", zap.Error(err))
		return []SimilarityHit{}
	}

	results := []SimilarityHit{}
	for _, p := range products {
		if len(p.Embedding) == 0 {
			continue
		}
		score := cosineSimilarity(query, p.Embedding)
		results = append(results, SimilarityHit{
			Name:  p.Name,
			Price: p.Price,
			Score: math.Round(score*1000) / 10,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topResults {
		results = results[:topResults]
	}
	return results
}

// cosineSimilarity = dot(a, b) / (‖a‖ · ‖b‖). Un vector de norma cero
// puntúa 0, nunca divide por cero.
func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
