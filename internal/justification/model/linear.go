// Package model evaluates exported TF-IDF + linear text classifiers.
//
// An export is a JSON document holding the fitted vectorizer (vocabulary,
// idf weights, n-gram range, stop words) and the linear layer (one weight row
// per class, or a single row for binary problems). Logistic exports expose
// class probabilities; linear SVM exports only expose a label.
package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
)

type Kind string

const (
	KindLogistic  Kind = "logistic"
	KindLinearSVM Kind = "linear_svm"
)

// Export is the on-disk model document.
type Export struct {
	Kind        Kind           `json:"kind"`
	Classes     []string       `json:"classes"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Coef        [][]float64    `json:"coef"`
	Intercept   []float64      `json:"intercept"`
	NgramMin    int            `json:"ngram_min"`
	NgramMax    int            `json:"ngram_max"`
	StopWords   []string       `json:"stop_words"`
	SublinearTF bool           `json:"sublinear_tf"`
}

var ErrInvalidExport = errors.New("invalid model export")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Linear is an immutable, loaded classifier. Safe for concurrent use.
type Linear struct {
	kind        Kind
	classes     []string
	vocabulary  map[string]int
	idf         []float64
	coef        [][]float64
	intercept   []float64
	ngramMin    int
	ngramMax    int
	stopWords   map[string]struct{}
	sublinearTF bool
}

// New validates an export and builds a classifier from it.
func New(e Export) (*Linear, error) {
	if e.Kind != KindLogistic && e.Kind != KindLinearSVM {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidExport, e.Kind)
	}
	if len(e.Classes) < 2 {
		return nil, fmt.Errorf("%w: need at least two classes", ErrInvalidExport)
	}
	if len(e.IDF) == 0 || len(e.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidExport)
	}
	for term, idx := range e.Vocabulary {
		if idx < 0 || idx >= len(e.IDF) {
			return nil, fmt.Errorf("%w: vocabulary index %d for %q out of range", ErrInvalidExport, idx, term)
		}
	}

	rows := len(e.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(e.Coef) != rows || len(e.Intercept) != rows {
		return nil, fmt.Errorf("%w: expected %d weight rows for %d classes, got coef=%d intercept=%d",
			ErrInvalidExport, rows, len(e.Classes), len(e.Coef), len(e.Intercept))
	}
	for i, row := range e.Coef {
		if len(row) != len(e.IDF) {
			return nil, fmt.Errorf("%w: coef row %d has %d weights, want %d", ErrInvalidExport, i, len(row), len(e.IDF))
		}
	}

	ngramMin, ngramMax := e.NgramMin, e.NgramMax
	if ngramMin <= 0 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}

	stop := make(map[string]struct{}, len(e.StopWords))
	for _, w := range e.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	return &Linear{
		kind:        e.Kind,
		classes:     slices.Clone(e.Classes),
		vocabulary:  e.Vocabulary,
		idf:         slices.Clone(e.IDF),
		coef:        e.Coef,
		intercept:   slices.Clone(e.Intercept),
		ngramMin:    ngramMin,
		ngramMax:    ngramMax,
		stopWords:   stop,
		sublinearTF: e.SublinearTF,
	}, nil
}

func (m *Linear) Kind() Kind {
	return m.kind
}

func (m *Linear) Classes() []string {
	return slices.Clone(m.classes)
}

// HasConfidence reports whether PredictScored returns calibrated probabilities.
func (m *Linear) HasConfidence() bool {
	return m.kind == KindLogistic
}

// Predict returns the highest scoring class label.
func (m *Linear) Predict(ctx context.Context, text string) (string, error) {
	scores, err := m.decision(ctx, text)
	if err != nil {
		return "", err
	}
	return m.classes[argmax(m.expand(scores))], nil
}

// PredictScored returns the label and its probability. Only logistic exports
// support it.
func (m *Linear) PredictScored(ctx context.Context, text string) (string, float64, error) {
	if !m.HasConfidence() {
		return "", 0, fmt.Errorf("%s model does not expose confidence", m.kind)
	}
	scores, err := m.decision(ctx, text)
	if err != nil {
		return "", 0, err
	}
	probs := m.probabilities(scores)
	best := argmax(probs)
	return m.classes[best], probs[best], nil
}

func (m *Linear) decision(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	features := m.vectorize(text)
	scores := make([]float64, len(m.coef))
	for r, row := range m.coef {
		s := m.intercept[r]
		for idx, v := range features {
			s += row[idx] * v
		}
		scores[r] = s
	}
	return scores, nil
}

// expand turns a single binary decision value into per-class scores.
func (m *Linear) expand(scores []float64) []float64 {
	if len(scores) == 1 {
		return []float64{-scores[0], scores[0]}
	}
	return scores
}

func (m *Linear) probabilities(scores []float64) []float64 {
	if len(scores) == 1 {
		p := 1 / (1 + math.Exp(-scores[0]))
		return []float64{1 - p, p}
	}
	return softmax(scores)
}

// vectorize produces the L2-normalised tf-idf vector as a sparse map.
func (m *Linear) vectorize(text string) map[int]float64 {
	tokens := m.tokens(text)
	counts := make(map[int]float64)
	for n := m.ngramMin; n <= m.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if idx, ok := m.vocabulary[gram]; ok {
				counts[idx]++
			}
		}
	}

	var norm float64
	for idx, tf := range counts {
		if m.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		v := tf * m.idf[idx]
		counts[idx] = v
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

func (m *Linear) tokens(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := m.stopWords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

func softmax(scores []float64) []float64 {
	maxScore := slices.Max(scores)
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
