package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneBaskets(t *testing.T) {
	t.Run("tamaño mínimo", func(t *testing.T) {
		in := [][]string{
			{"a", "b", "c"},
			{"a"},
			{"b", "c"},
			{},
		}
		got := PruneBaskets(in, 2, 0)
		assert.Equal(t, [][]string{{"a", "b", "c"}, {"b", "c"}}, got)
	})

	t.Run("frecuencia global", func(t *testing.T) {
		// "x" aparece en una sola canasta, con minFreq=2 se quita y la
		// canasta {x, y} se vuelve a descartar por tamaño
		in := [][]string{
			{"a", "b"},
			{"a", "b", "x"},
			{"a", "y"},
			{"b", "y"},
		}
		got := PruneBaskets(in, 2, 2)
		assert.Equal(t, [][]string{
			{"a", "b"},
			{"a", "b"},
			{"a", "y"},
			{"b", "y"},
		}, got)
	})

	t.Run("poda en cascada", func(t *testing.T) {
		// al quitar "z" la canasta {c, z} queda chica y se descarta
		in := [][]string{
			{"c", "z"},
			{"c", "d"},
			{"c", "d"},
		}
		got := PruneBaskets(in, 2, 2)
		assert.Equal(t, [][]string{{"c", "d"}, {"c", "d"}}, got)
	})

	t.Run("minItems menor a 1 se normaliza", func(t *testing.T) {
		in := [][]string{{"a"}, {}}
		got := PruneBaskets(in, 0, 0)
		assert.Equal(t, [][]string{{"a"}}, got)
	})

	t.Run("entrada vacía", func(t *testing.T) {
		assert.Empty(t, PruneBaskets(nil, 2, 2))
	})
}
