package thermal_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chambertherm/internal/integrators"
	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/thermal"
)

var _ = Describe("Params", func() {
	var p thermal.Params

	BeforeEach(func() {
		p = thermal.DefaultParams()
	})

	It("derives the reference constants", func() {
		Expect(p.ThermalMass()).To(BeNumerically("==", 300))
		Expect(p.Conductance()).To(BeNumerically("~", 20, 1e-12))
		Expect(p.TimeConstant()).To(BeNumerically("~", 15, 1e-12))
		Expect(p.Equilibrium()).To(BeNumerically("~", 27.5, 1e-12))
		Expect(p.Validate()).To(Succeed())
	})

	It("scales the stable step with the time constant", func() {
		Expect(p.StableStep(2)).To(BeNumerically("~", 30, 1e-12))
		Expect(p.StableStep(2.785)).To(BeNumerically("~", 41.775, 1e-9))
	})

	Describe("Derivative", func() {
		It("is zero at equilibrium", func() {
			f := p.Derivative()
			Expect(f(0, p.Equilibrium())).To(BeNumerically("~", 0, 1e-15))
		})

		It("matches the energy balance", func() {
			f := p.Derivative()
			// (50 - 20*(50-25)) / 300
			Expect(f(0, 50)).To(BeNumerically("~", -1.5, 1e-12))
		})

		It("ignores time", func() {
			f := p.Derivative()
			Expect(f(0, 40)).To(Equal(f(1e6, 40)))
		})

		It("does not see later changes to the params", func() {
			f := p.Derivative()
			before := f(0, 30)
			p.HeatInput = 1e4
			Expect(f(0, 30)).To(Equal(before))
		})
	})

	DescribeTable("Validate rejects",
		func(mutate func(*thermal.Params)) {
			mutate(&p)
			Expect(p.Validate()).To(MatchError(thermal.ErrParams))
		},
		Entry("zero mass", func(p *thermal.Params) { p.Mass = 0 }),
		Entry("negative specific heat", func(p *thermal.Params) { p.SpecificHeat = -600 }),
		Entry("negative conductance", func(p *thermal.Params) { p.Area = -0.2 }),
		Entry("NaN heat input", func(p *thermal.Params) { p.HeatInput = math.NaN() }),
		Entry("infinite ambient", func(p *thermal.Params) { p.Ambient = math.Inf(-1) }),
	)

	Context("without convective loss", func() {
		BeforeEach(func() {
			p.TransferCoeff = 0
		})

		It("has no finite equilibrium", func() {
			Expect(p.Validate()).To(Succeed())
			Expect(math.IsInf(p.Equilibrium(), 1)).To(BeTrue())
			Expect(math.IsInf(p.TimeConstant(), 1)).To(BeTrue())
		})

		It("heats linearly", func() {
			exact := p.Exact(20, 0)
			Expect(exact(300)).To(BeNumerically("~", 70, 1e-12))
		})
	})
})

var _ = Describe("RK4 on the chamber model", func() {
	const (
		temp0 = 50.0
		t0    = 0.0
		tEnd  = 100.0
		dt    = 1.0
	)

	var (
		p    thermal.Params
		traj sim.Trajectory
	)

	BeforeEach(func() {
		p = thermal.DefaultParams()
		var err error
		traj, err = integrators.Integrate(p.Derivative(), temp0, t0, tEnd, dt)
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns floor((tEnd-t0)/dt)+1 samples", func() {
		Expect(traj).To(HaveLen(101))
	})

	It("starts exactly at the initial condition", func() {
		Expect(traj[0]).To(Equal(sim.Sample{T: t0, X: temp0}))
	})

	It("matches the closed-form solution within 1e-4 at every sample", func() {
		exact := p.Exact(temp0, t0)
		for _, s := range traj {
			Expect(s.X).To(BeNumerically("~", exact(s.T), 1e-4), "t=%g", s.T)
		}
	})

	It("spaces samples by dt", func() {
		for i := 1; i < len(traj); i++ {
			Expect(traj[i].T - traj[i-1].T).To(BeNumerically("~", dt, 1e-12))
		}
	})

	It("cools monotonically towards equilibrium", func() {
		for i := 1; i < len(traj); i++ {
			Expect(traj[i].X).To(BeNumerically("<", traj[i-1].X))
			Expect(traj[i].X).To(BeNumerically(">", p.Equilibrium()))
		}
	})

	It("converges to equilibrium as tEnd grows", func() {
		eq := p.Equilibrium()
		prev := math.Inf(1)
		for _, end := range []float64{50, 100, 200, 400, 800} {
			tr, err := integrators.Integrate(p.Derivative(), temp0, t0, end, dt)
			Expect(err).NotTo(HaveOccurred())
			gap := math.Abs(tr.Final().X - eq)
			Expect(gap).To(BeNumerically("<", prev))
			prev = gap
		}
		Expect(prev).To(BeNumerically("<", 1e-9))
	})

	DescribeTable("rejects a non-positive step",
		func(step float64) {
			_, err := integrators.Integrate(p.Derivative(), temp0, t0, tEnd, step)
			Expect(err).To(MatchError(sim.ErrInvalidStep))
		},
		Entry("zero", 0.0),
		Entry("negative", -1.0),
	)

	Context("with a step beyond the stability limit", func() {
		It("diverges instead of converging", func() {
			step := 4 * p.TimeConstant()
			Expect(step).To(BeNumerically(">", p.StableStep(integrators.NewRK4().StabilityLimit())))

			tr, err := integrators.Integrate(p.Derivative(), temp0, t0, 40*step, step)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.Abs(tr.Final().X - p.Equilibrium())).To(BeNumerically(">", math.Abs(temp0-p.Equilibrium())))
		})

		It("lets overflow propagate as non-finite samples", func() {
			step := 1000.0
			tr, err := integrators.Integrate(p.Derivative(), temp0, t0, 1000*step, step)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr).To(HaveLen(1001))
			Expect(tr.IsFinite()).To(BeFalse())
		})
	})
})
