package shop

import (
	"context"
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// Umbral fijo del predicado de rango del benchmark
const benchmarkPriceThreshold = 8000

// Pasadas por medición: el tiempo reportado es la media, amortigua el ruido
// de caché del motor.
const benchmarkRuns = 3

// BenchmarkLeg es una medición: tiempo medio en ms y recuento de resultados
type BenchmarkLeg struct {
	TimeMs float64 `json:"time"`
	Count  int64   `json:"count"`
}

// BenchmarkReport compara la misma query con y sin índice. Los dos recuentos
// deben coincidir: el índice no puede cambiar la semántica del resultado.
type BenchmarkReport struct {
	WithoutIndex BenchmarkLeg `json:"without_index"`
	WithIndex    BenchmarkLeg `json:"with_index"`
	Improvement  float64      `json:"improvement"`
}

// IndexBenchmark mide empíricamente el efecto de un índice: elimina los
// índices secundarios, cronometra el predicado price > 8000 (contar +
// materializar), crea el índice sobre price y cronometra la query idéntica.
// Los tiempos absolutos dependen del estado del motor; lo estable son los
// recuentos y que el ratio sea positivo.
func (s *Service) IndexBenchmark(ctx context.Context) (BenchmarkReport, error) {
	if err := s.products.DropIndexes(ctx); err != nil {
		return BenchmarkReport{}, err
	}

	without, err := s.timeScan(ctx)
	if err != nil {
		return BenchmarkReport{}, err
	}

	if err := s.products.CreatePriceIndex(ctx); err != nil {
		return BenchmarkReport{}, err
	}

	with, err := s.timeScan(ctx)
	if err != nil {
		return BenchmarkReport{}, err
	}

	improvement := 1.0
	if with.TimeMs > 0 {
		improvement = math.Round(without.TimeMs/with.TimeMs*10) / 10
	}

	return BenchmarkReport{
		WithoutIndex: without,
		WithIndex:    with,
		Improvement:  improvement,
	}, nil
}

func (s *Service) timeScan(ctx context.Context) (BenchmarkLeg, error) {
	var count int64
	samples := make([]float64, 0, benchmarkRuns)

	for i := 0; i < benchmarkRuns; i++ {
		start := time.Now()
		c, err := s.products.ScanPriceAbove(ctx, benchmarkPriceThreshold)
		if err != nil {
			return BenchmarkLeg{}, err
		}
		samples = append(samples, float64(time.Since(start).Microseconds())/1000)
		count = c
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return BenchmarkLeg{}, err
	}

	return BenchmarkLeg{
		TimeMs: math.Round(mean*100) / 100,
		Count:  count,
	}, nil
}
