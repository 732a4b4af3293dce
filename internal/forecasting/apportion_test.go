package forecasting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApportion(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		weights  []int
		expected []int
	}{
		{
			name:     "Divisão exata",
			total:    6,
			weights:  []int{1, 2, 3},
			expected: []int{1, 2, 3},
		},
		{
			name:     "Empate no resto vai para o último balde",
			total:    10,
			weights:  []int{1, 1, 1},
			expected: []int{3, 3, 4},
		},
		{
			name:     "Dois restos empatados para os baldes finais",
			total:    2,
			weights:  []int{1, 1, 1, 0},
			expected: []int{0, 1, 1, 0},
		},
		{
			name:     "Maior resto vence mesmo no primeiro balde",
			total:    3,
			weights:  []int{3, 2},
			expected: []int{2, 1},
		},
		{
			name:     "Pesos negativos são ignorados",
			total:    7,
			weights:  []int{2, -1, 5},
			expected: []int{2, 0, 5},
		},
		{
			name:     "Todos os pesos zero",
			total:    5,
			weights:  []int{0, 0},
			expected: []int{0, 0},
		},
		{
			name:     "Total zero",
			total:    0,
			weights:  []int{3, 4},
			expected: []int{0, 0},
		},
		{
			name:     "Sem baldes",
			total:    4,
			weights:  []int{},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Apportion(tt.total, tt.weights))
		})
	}
}

func TestApportion_SumsToTotal(t *testing.T) {
	weights := []int{3, 0, 7, 1, 1, 9, 2, 0, 4, 5}

	for total := 1; total <= 50; total++ {
		sum := 0
		for _, v := range Apportion(total, weights) {
			sum += v
		}
		assert.Equal(t, total, sum, "total %d", total)
	}
}

func TestApportion_LargeValuesDoNotOverflow(t *testing.T) {
	total := math.MaxInt32
	out := Apportion(total, []int{math.MaxInt32, math.MaxInt32})

	assert.Equal(t, total, out[0]+out[1])
	assert.Equal(t, total/2, out[0])
}
