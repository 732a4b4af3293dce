package forecasting

import (
	"math/bits"
	"sort"
)

// Apportion divide total unidades entre os baldes proporcionalmente aos pesos
// (método do maior resto). O resultado sempre soma exatamente total quando há
// algum peso positivo. Empates no resto favorecem o balde mais ao final, então
// um empate geral manda o resto para o último balde elegível.
//
// Pesos não positivos recebem zero; total não positivo ou soma de pesos zero
// devolvem apenas zeros.
func Apportion(total int, weights []int) []int {
	out := make([]int, len(weights))

	var weightSum uint64
	for _, w := range weights {
		if w > 0 {
			weightSum += uint64(w)
		}
	}

	if total <= 0 || weightSum == 0 {
		return out
	}

	type remainder struct {
		index int
		value uint64
	}

	remainders := make([]remainder, 0, len(weights))
	assigned := 0

	for i, w := range weights {
		if w <= 0 {
			continue
		}

		// total*w/weightSum sem overflow: w <= weightSum garante que o quociente cabe
		hi, lo := bits.Mul64(uint64(total), uint64(w))
		quotient, rem := bits.Div64(hi, lo, weightSum)

		out[i] = int(quotient)
		assigned += out[i]
		remainders = append(remainders, remainder{index: i, value: rem})
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		if remainders[a].value != remainders[b].value {
			return remainders[a].value > remainders[b].value
		}
		return remainders[a].index > remainders[b].index
	})

	for k := 0; k < total-assigned && k < len(remainders); k++ {
		out[remainders[k].index]++
	}

	return out
}
