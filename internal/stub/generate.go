package stub

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/arxivcs/internal/api"
)

var (
	genTopics = []string{"Graph Neural Networks", "Reinforcement Learning", "Hash Tables", "Sorting Networks", "Binary Search Trees", "Diffusion Models", "Consensus Protocols", "Type Inference"}
	genAngles = []string{"A Survey of", "Scalable", "Towards Robust", "Revisiting", "Efficient", "On the Limits of"}
	genNames  = []string{"A. Turing", "G. Hopper", "D. Knuth", "B. Liskov", "L. Lamport", "F. Allen", "E. Dijkstra", "R. Milner"}
)

// GeneratePapers returns n synthetic papers. The same seed yields the same
// papers, so searches against a generated corpus are repeatable.
func GeneratePapers(n int, seed int64) []api.Paper {
	if n <= 0 {
		return []api.Paper{}
	}
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]api.Paper, 0, n)
	for i := 0; i < n; i++ {
		topic := genTopics[rng.Intn(len(genTopics))]
		published := base.AddDate(0, 0, rng.Intn(3650))
		authors := make([]string, 0, 3)
		for j := 0; j <= rng.Intn(3); j++ {
			authors = append(authors, genNames[rng.Intn(len(genNames))])
		}
		out = append(out, api.Paper{
			ID:        fmt.Sprintf("%s.%05d", published.Format("0601"), rng.Intn(100000)),
			Title:     genAngles[rng.Intn(len(genAngles))] + " " + topic,
			Authors:   authors,
			Abstract:  fmt.Sprintf("We study %s and report results on synthetic benchmarks.", topic),
			Published: published.Format(time.DateOnly),
		})
	}
	return out
}
