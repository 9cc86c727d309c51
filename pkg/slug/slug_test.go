package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "mi-nota", Make("Mi Nota"))
	assert.Equal(t, "issue-14-primavera", Make("Issue #14: Primavera"))
	assert.Equal(t, "moda-argentina", Make("  Moda   Argentina  "))
}

func TestMake_Diacritics(t *testing.T) {
	assert.Equal(t, "edicion-aniversario", Make("Edición Aniversario"))
	assert.Equal(t, "manana-sera-otro-dia", Make("Mañana será otro día"))
}

func TestMake_Empty(t *testing.T) {
	assert.Equal(t, "contenido", Make(""))
	assert.Equal(t, "contenido", Make("¡¡¡???"))
}

func TestMake_LongTitle(t *testing.T) {
	long := strings.Repeat("palabra ", 40)
	s := Make(long)
	assert.LessOrEqual(t, len([]rune(s)), 100)
	assert.False(t, strings.HasSuffix(s, "-"))
}
