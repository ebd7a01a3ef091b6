package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, NormalizeKey("TOLUCA_DE_LERDO"), NormalizeKey("Toluca  de  Lerdo"))
	assert.Equal(t, "NOMBRE_DEL_MUNICIPIO", NormalizeKey("  Nombre del municipio "))
	assert.Equal(t, "ACAMBAY_DE_RUIZ_CASTANEDA", NormalizeKey("Acambay de Ruíz Castañeda"))
	assert.Equal(t, "MATRICULA_TOTAL", NormalizeKey("Matrícula\ttotal"))
	assert.Equal(t, "", NormalizeKey(""))
	assert.Equal(t, "", NormalizeKey(" \t\n"))
}

// буквы без однорунного верхнего регистра складываются только после снятия знака
func TestNormalizeKey_NoSimpleUpper(t *testing.T) {
	assert.Equal(t, "J", NormalizeKey("ǰ"))
	assert.Equal(t, "H", NormalizeKey("ẖ"))
	assert.Equal(t, "SANJUAN", NormalizeKey("Sanǰuan"))
	assert.Equal(t, NormalizeKey("San Juan"), NormalizeKey("san  ǰuan"))
}

func TestNormalizeKey_Idempotent(t *testing.T) {
	inputs := []string{
		"", "a", "Toluca  de  Lerdo", "Ñuñoa", "São Paulo", "  mixed\tCase  ",
		"CVE_MUN", "Ecatepec de Morelos", "ǅemal", "ﬁ ligature", "x y",
		"ǰ", "ẖ", "Sanǰuan",
	}
	for _, in := range inputs {
		once := NormalizeKey(in)
		assert.Equal(t, once, NormalizeKey(once), "input %q", in)
	}
}
