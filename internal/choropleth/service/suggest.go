package service

import (
	"sort"
	"strings"

	"choropleth-service/internal/choropleth/model"
)

const (
	SuggestLimit     = 3
	SuggestThreshold = 0.6
)

// триграммный индекс нормализованных имён таблицы.
type nameIndex struct {
	raw   map[string]string              // key -> имя как в файле
	grams map[string]map[string]struct{} // trigram -> set(key)
}

func newNameIndex(recs []model.Record) *nameIndex {
	ix := &nameIndex{raw: map[string]string{}, grams: map[string]map[string]struct{}{}}
	for _, r := range recs {
		key := NormalizeKey(r.Name)
		if key == "" {
			continue
		}
		ix.raw[key] = r.Name
		for g := range trigrams(key) {
			bucket, ok := ix.grams[g]
			if !ok {
				bucket = map[string]struct{}{}
				ix.grams[g] = bucket
			}
			bucket[key] = struct{}{}
		}
	}
	return ix
}

// candidates returns keys sharing at least one trigram, sorted for
// deterministic output.
func (ix *nameIndex) candidates(key string) []string {
	seen := map[string]struct{}{}
	for g := range trigrams(key) {
		for k := range ix.grams[g] {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Unmatched reports regions with no record, each with up to SuggestLimit
// near-miss names, plus records no region resolves to.
func Unmatched(ids []string, m *model.Mapping) model.Unmatched {
	out := model.Unmatched{Regions: []model.Suggestion{}, Orphans: []string{}}
	recs := m.Records()
	ix := newNameIndex(recs)

	bound := map[string]struct{}{}
	for _, id := range ids {
		if rec, ok := Resolve(m, id); ok {
			bound[rec.Name] = struct{}{}
			continue
		}
		out.Regions = append(out.Regions, model.Suggestion{Region: id, Candidates: ix.suggest(NormalizeKey(id))})
	}
	for _, r := range recs {
		if _, ok := bound[r.Name]; !ok {
			out.Orphans = append(out.Orphans, r.Name)
		}
	}
	return out
}

func (ix *nameIndex) suggest(key string) []model.Candidate {
	out := []model.Candidate{}
	if key == "" {
		return out
	}
	for _, k := range ix.candidates(key) {
		if s := similarity(key, k); s >= SuggestThreshold {
			out = append(out, model.Candidate{Name: ix.raw[k], Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > SuggestLimit {
		out = out[:SuggestLimit]
	}
	return out
}

func trigrams(s string) map[string]struct{} {
	m := map[string]struct{}{}
	r := []rune(" " + s + " ")
	if len(r) < 3 {
		m[string(r)] = struct{}{}
		return m
	}
	for i := 0; i+3 <= len(r); i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

// similarity is the better of the plain and token-sorted normalized
// Damerau-Levenshtein scores, so "MORELOS_ECATEPEC" still matches.
func similarity(a, b string) float64 {
	return max(damerauScore(a, b), damerauScore(tokenSort(a), tokenSort(b)))
}

func damerauScore(a, b string) float64 {
	if a == b {
		return 1
	}
	n := max(len([]rune(a)), len([]rune(b)))
	if n == 0 {
		return 1
	}
	return 1 - float64(damerau(a, b))/float64(n)
}

func tokenSort(key string) string {
	t := strings.Split(key, "_")
	sort.Strings(t)
	return strings.Join(t, "_")
}

// damerau: optimal string alignment distance.
func damerau(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	dp := make([][]int, len(ra)+1)
	for i := range dp {
		dp[i] = make([]int, len(rb)+1)
		dp[i][0] = i
	}
	for j := range dp[0] {
		dp[0][j] = j
	}
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			// вставка / удаление / замена
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)
			// транспозиция соседних
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				dp[i][j] = min(dp[i][j], dp[i-2][j-2]+1)
			}
		}
	}
	return dp[len(ra)][len(rb)]
}
