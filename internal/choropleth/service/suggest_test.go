package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choropleth-service/internal/choropleth/model"
)

func TestDamerau(t *testing.T) {
	assert.Equal(t, 0, damerau("TOLUCA", "TOLUCA"))
	assert.Equal(t, 1, damerau("TOLUCA", "TOLCUA"))
	assert.Equal(t, 1, damerau("LERMA", "LERMAS"))
	assert.Equal(t, 6, damerau("", "TOLUCA"))
}

func TestSimilarity_TokenOrder(t *testing.T) {
	assert.Equal(t, 1.0, similarity("ECATEPEC_DE_MORELOS", "MORELOS_DE_ECATEPEC"))
	assert.Less(t, similarity("TOLUCA", "LERMA"), SuggestThreshold)
}

func TestUnmatched(t *testing.T) {
	m := model.NewMapping()
	for _, name := range []string{"Toluca", "Metepek", "Zinacantepec de Lerdo", "Texcoco"} {
		m.Put(model.Record{Name: name, Value: model.Float(1)}, NormalizeKey(name))
	}
	ids := []string{"Toluca", "Metepec", "Lerma"}

	u := Unmatched(ids, m)
	require.Len(t, u.Regions, 2)
	assert.Equal(t, "Metepec", u.Regions[0].Region)
	require.NotEmpty(t, u.Regions[0].Candidates)
	assert.Equal(t, "Metepek", u.Regions[0].Candidates[0].Name)
	assert.InDelta(t, 1-1.0/7, u.Regions[0].Candidates[0].Score, 1e-9)

	assert.Equal(t, "Lerma", u.Regions[1].Region)
	assert.Empty(t, u.Regions[1].Candidates)

	assert.Equal(t, []string{"Metepek", "Zinacantepec de Lerdo", "Texcoco"}, u.Orphans)
}

func TestUnmatched_EmptyMapping(t *testing.T) {
	u := Unmatched([]string{"Toluca"}, nil)
	require.Len(t, u.Regions, 1)
	assert.Empty(t, u.Regions[0].Candidates)
	assert.Empty(t, u.Orphans)
}
