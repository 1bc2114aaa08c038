package dist

import (
	"math"
	"testing"
)

func almostEqual(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGeometricCountedVisits(t *testing.T) {
	// a{5~Geo(0.5)}: n_min=5, so 5 visits is k=1 (0.5) and 6 is k=2 (0.25).
	d, err := NewGeometric(5, 10, 0.5)
	if err != nil {
		t.Fatalf("NewGeometric: %v", err)
	}
	_, p1 := d.Evaluate(5)
	almostEqual(t, p1, 0.5)
	_, p1 = d.Evaluate(6)
	almostEqual(t, p1, 0.25)
}

func TestGeometricIndexedClass(t *testing.T) {
	// ^[abc~Geo(0.5)]$ matching 'b': position x=1, n_min=0 (class default).
	d, err := NewGeometric(0, 2, 0.5)
	if err != nil {
		t.Fatalf("NewGeometric: %v", err)
	}
	p0, p1 := d.Evaluate(1)
	almostEqual(t, p1, 0.25)
	almostEqual(t, p0, 0.75)
}

func TestGeometricRejectsZeroProbability(t *testing.T) {
	if _, err := NewGeometric(0, 1, 0); err == nil {
		t.Fatal("expected domain error for p=0")
	}
}

func TestBernoulliIndexedClass(t *testing.T) {
	// ^[abc~Ber(0.5)]$ matching 'c': position x=2 is within n_max=2, but the
	// Bernoulli pmf has no mass past 1, so pmf(2)=0.
	d, err := NewBernoulli(0, 2, 0.5)
	if err != nil {
		t.Fatalf("NewBernoulli: %v", err)
	}
	_, p1 := d.Evaluate(2)
	almostEqual(t, p1, 0)
}

func TestBernoulliBounds(t *testing.T) {
	d, err := NewBernoulli(0, 2, 0.3)
	if err != nil {
		t.Fatalf("NewBernoulli: %v", err)
	}
	_, p1 := d.Evaluate(0)
	almostEqual(t, p1, 0.7)
	_, p1 = d.Evaluate(1)
	almostEqual(t, p1, 0.3)
}

func TestBinomialIndexedClass(t *testing.T) {
	// ^[abc~Bin(0.5)]$ matching 'b': position x=1, n_max=|class|-1=2.
	d, err := NewBinomial(0, 2, 0.5)
	if err != nil {
		t.Fatalf("NewBinomial: %v", err)
	}
	_, p1 := d.Evaluate(1)
	almostEqual(t, p1, 0.5)
}

func TestBinomialDegenerateProbabilities(t *testing.T) {
	d, err := NewBinomial(0, 4, 0)
	if err != nil {
		t.Fatalf("NewBinomial: %v", err)
	}
	_, p1 := d.Evaluate(0)
	almostEqual(t, p1, 1)
	_, p1 = d.Evaluate(3)
	almostEqual(t, p1, 0)

	d, err = NewBinomial(0, 4, 1)
	if err != nil {
		t.Fatalf("NewBinomial: %v", err)
	}
	_, p1 = d.Evaluate(4)
	almostEqual(t, p1, 1)
	_, p1 = d.Evaluate(2)
	almostEqual(t, p1, 0)
}

func TestZipfCountedVisits(t *testing.T) {
	// a{2~Zipf(1.0)} against "aa": n_max=2 (the literal quantifier count),
	// x=2 visits, H_2(1.0)=1+0.5=1.5, pmf(2)=2^-1/1.5=1/3.
	d, err := NewZipf(0, 2, 1.0)
	if err != nil {
		t.Fatalf("NewZipf: %v", err)
	}
	_, p1 := d.Evaluate(2)
	almostEqual(t, p1, 1.0/3.0)
}

func TestZipfRankZeroIsRemainder(t *testing.T) {
	d, err := NewZipf(0, 3, 1.0)
	if err != nil {
		t.Fatalf("NewZipf: %v", err)
	}
	_, p1 := d.Evaluate(0)
	almostEqual(t, p1, 0)
}

func TestZipfRejectsNonPositiveShape(t *testing.T) {
	if _, err := NewZipf(0, 3, 0); err == nil {
		t.Fatal("expected domain error for s=0")
	}
}

func TestConstantRange(t *testing.T) {
	d, err := NewConstant(1, 3, 0.8)
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}
	for x := uint64(1); x <= 3; x++ {
		_, p1 := d.Evaluate(x)
		almostEqual(t, p1, 0.8)
	}
	_, p1 := d.Evaluate(4)
	almostEqual(t, p1, 0)
}

func TestExactlyTimes(t *testing.T) {
	d := NewExactlyTimes(3)
	_, p1 := d.Evaluate(2)
	almostEqual(t, p1, 0)
	_, p1 = d.Evaluate(3)
	almostEqual(t, p1, 1)
	_, p1 = d.Evaluate(4)
	almostEqual(t, p1, 0)
}

func TestCategoricalRemainderSlot(t *testing.T) {
	// [a~Cat(a=0.7,.=0.1)]: index 0 is remainder mass 0.1, index 1 is 'a' at 0.7.
	d := NewCategorical([]float64{0.1, 0.7})
	_, p1 := d.Evaluate(0)
	almostEqual(t, p1, 0.1)
	_, p1 = d.Evaluate(1)
	almostEqual(t, p1, 0.7)
}

func TestCategoricalOutOfRangeIndex(t *testing.T) {
	d := NewCategorical([]float64{0.1, 0.7})
	_, p1 := d.Evaluate(5)
	almostEqual(t, p1, 0)
}

func TestCategoricalDoesNotRenormalize(t *testing.T) {
	// A caller-built vector summing to 0.5 is passed through as-is.
	d := NewCategorical([]float64{0.1, 0.2, 0.2})
	_, p1 := d.Evaluate(1)
	almostEqual(t, p1, 0.2)
}
