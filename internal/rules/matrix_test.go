package rules_test

import (
	"math/rand"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/avray/plife/internal/life"
	"github.com/avray/plife/internal/rules"
)

var _ = Describe("Matrix", func() {
	Describe("NewRandom", func() {
		It("produces a square matrix with entries in [-1,1]", func() {
			rng := rand.New(rand.NewSource(7))
			m := rules.NewRandom(5, rng)

			Expect(m.Valid(5)).To(BeTrue())
			for i := range m {
				for j := range m[i] {
					Expect(m[i][j]).To(And(
						BeNumerically(">=", -1),
						BeNumerically("<=", 1),
					))
				}
			}
		})

		It("is reproducible for a fixed seed", func() {
			a := rules.NewRandom(4, rand.New(rand.NewSource(42)))
			b := rules.NewRandom(4, rand.New(rand.NewSource(42)))
			Expect(a).To(Equal(b))
		})
	})

	Describe("NewRing", func() {
		It("attracts self and successor, avoids predecessor", func() {
			m := rules.NewRing(4)

			Expect(m.Valid(4)).To(BeTrue())
			for i := 0; i < 4; i++ {
				Expect(m[i][i]).To(BeNumerically(">", 0))
				Expect(m[i][(i+1)%4]).To(BeNumerically(">", 0))
				Expect(m[i][(i+3)%4]).To(BeNumerically("<", 0))
			}
		})
	})

	Describe("Clone", func() {
		It("returns an independent copy", func() {
			m := rules.NewRing(3)
			c := m.Clone()
			c[0][0] = -0.9
			Expect(m[0][0]).NotTo(Equal(-0.9))
		})
	})

	Describe("Clamp", func() {
		It("forces entries into [-1,1]", func() {
			m := rules.Matrix{{2.5, -3.0}, {0.5, 1.0}}
			m.Clamp()
			Expect(m[0][0]).To(Equal(1.0))
			Expect(m[0][1]).To(Equal(-1.0))
			Expect(m[1][0]).To(Equal(0.5))
		})
	})
})

var _ = Describe("Record persistence", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("round-trips a matrix through disk", func() {
		path := filepath.Join(dir, "matrix.json")
		m := rules.NewRing(3)

		Expect(rules.Save(path, m)).To(Succeed())

		loaded, err := rules.Load(path, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(m))
	})

	It("rejects a record whose side disagrees with the live type count", func() {
		path := filepath.Join(dir, "matrix.json")
		Expect(rules.Save(path, rules.NewRing(3))).To(Succeed())

		_, err := rules.Load(path, 5)
		Expect(err).To(MatchError(life.ErrShapeMismatch))
	})

	It("clamps out-of-range entries on load", func() {
		path := filepath.Join(dir, "matrix.json")
		m := rules.Matrix{{4.0, 0}, {0, -4.0}}
		Expect(rules.Save(path, m)).To(Succeed())

		loaded, err := rules.Load(path, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded[0][0]).To(Equal(1.0))
		Expect(loaded[1][1]).To(Equal(-1.0))
	})
})
