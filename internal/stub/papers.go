package stub

import (
	"strings"

	"github.com/jask/arxivcs/internal/api"
)

// DefaultPapers is the corpus the stub searches.
func DefaultPapers() []api.Paper {
	return []api.Paper{
		{
			ID:        "1706.03762",
			Title:     "Attention Is All You Need",
			Authors:   []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar", "Jakob Uszkoreit"},
			Abstract:  "We propose the Transformer, a network architecture based solely on attention mechanisms, dispensing with recurrence and convolutions entirely.",
			Published: "2017-06-12",
		},
		{
			ID:        "1512.03385",
			Title:     "Deep Residual Learning for Image Recognition",
			Authors:   []string{"Kaiming He", "Xiangyu Zhang", "Shaoqing Ren", "Jian Sun"},
			Abstract:  "We present a residual learning framework to ease the training of neural networks that are substantially deeper than those used previously.",
			Published: "2015-12-10",
		},
		{
			ID:        "1810.04805",
			Title:     "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding",
			Authors:   []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova"},
			Abstract:  "We introduce a language representation model designed to pre-train deep bidirectional representations from unlabeled text.",
			Published: "2018-10-11",
		},
		{
			ID:        "1412.6980",
			Title:     "Adam: A Method for Stochastic Optimization",
			Authors:   []string{"Diederik P. Kingma", "Jimmy Ba"},
			Abstract:  "We introduce Adam, an algorithm for first-order gradient-based optimization of stochastic objective functions for neural network training.",
			Published: "2014-12-22",
		},
		{
			ID:        "1406.2661",
			Title:     "Generative Adversarial Networks",
			Authors:   []string{"Ian J. Goodfellow", "Jean Pouget-Abadie", "Mehdi Mirza"},
			Abstract:  "We propose a framework for estimating generative models via an adversarial process in which two neural networks are trained simultaneously.",
			Published: "2014-06-10",
		},
		{
			ID:        "1301.3781",
			Title:     "Efficient Estimation of Word Representations in Vector Space",
			Authors:   []string{"Tomas Mikolov", "Kai Chen", "Greg Corrado", "Jeffrey Dean"},
			Abstract:  "We propose two novel model architectures for computing continuous vector representations of words from very large data sets.",
			Published: "2013-01-16",
		},
		{
			ID:        "1710.09829",
			Title:     "Dynamic Routing Between Capsules",
			Authors:   []string{"Sara Sabour", "Nicholas Frosst", "Geoffrey E. Hinton"},
			Abstract:  "A capsule is a group of neurons whose activity vector represents the instantiation parameters of a specific type of entity.",
			Published: "2017-10-26",
		},
		{
			ID:        "2005.14165",
			Title:     "Language Models are Few-Shot Learners",
			Authors:   []string{"Tom B. Brown", "Benjamin Mann", "Nick Ryder"},
			Abstract:  "We show that scaling up language models greatly improves task-agnostic, few-shot performance, sometimes reaching competitiveness with prior fine-tuning approaches.",
			Published: "2020-05-28",
		},
	}
}

// matchPapers returns up to limit papers whose title or abstract contains
// any word of the query. "*" matches everything.
func matchPapers(papers []api.Paper, query string, limit int) []api.Paper {
	out := make([]api.Paper, 0, min(limit, len(papers)))
	if limit <= 0 {
		return out
	}
	words := strings.Fields(strings.ToLower(query))
	for _, p := range papers {
		if len(out) >= limit {
			break
		}
		if matches(p, words) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p api.Paper, words []string) bool {
	hay := strings.ToLower(p.Title + " " + p.Abstract)
	for _, w := range words {
		if w == "*" || (len(w) > 2 && strings.Contains(hay, w)) {
			return true
		}
	}
	return false
}

func toSources(papers []api.Paper) []api.Source {
	out := make([]api.Source, 0, len(papers))
	for _, p := range papers {
		year := p.Published
		if len(year) >= 4 {
			year = year[:4]
		}
		out = append(out, api.Source{
			ID:      p.ID,
			Title:   p.Title,
			Authors: p.Authors,
			URL:     p.AbsURL(),
			Year:    year,
		})
	}
	return out
}
