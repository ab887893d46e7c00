package integrators

import (
	"testing"

	"github.com/san-kum/chambertherm/internal/sim"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	x := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(decay, 0, x, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	x := 1.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(decay, 0, x, 0.01)
	}
}

func BenchmarkIntegrate10k(b *testing.B) {
	var f sim.Func = decay

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Integrate(f, 1, 0, 100, 0.01); err != nil {
			b.Fatal(err)
		}
	}
}
