package transform

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-packet/packet/core"
)

func BenchmarkCompute(b *testing.B) {
	for _, steps := range []int{2000, 20000} {
		e, err := NewEngine(core.WithNumSteps(steps))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("steps=%d", steps), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				if _, err := e.Compute(defaultRequest(11)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
