package camera

import (
	"math"
	"testing"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestNewOrbit_RecoversPosition(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 15}, [3]float32{0, 0, 0}, 5, 30, 0.05)
	if !near(o.Distance, 15, 1e-5) {
		t.Fatalf("Distance=%v; want 15", o.Distance)
	}
	p := o.Position()
	want := [3]float32{0, 0, 15}
	for i := range p {
		if !near(p[i], want[i], 1e-4) {
			t.Fatalf("Position=%v; want %v", p, want)
		}
	}
}

func TestOrbit_DampingGlidesToStop(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 15}, [3]float32{}, 5, 30, 0.05)
	o.Rotate(100, 0)
	start := o.Azimuth
	o.Update()
	first := o.Azimuth - start
	o.Update()
	second := o.Azimuth - start - first
	if math.Abs(float64(second)) >= math.Abs(float64(first)) {
		t.Fatalf("second step %v not smaller than first %v", second, first)
	}
	for i := 0; i < 2000; i++ {
		o.Update()
	}
	if !o.Settled() {
		t.Fatalf("not settled after damping")
	}
	total := o.Azimuth - start
	if !near(total, -100*o.RotateSpeed, 1e-3) {
		t.Fatalf("total rotation=%v; want %v", total, -100*o.RotateSpeed)
	}
}

func TestOrbit_DistanceClamped(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 15}, [3]float32{}, 5, 30, 1)
	o.Zoom(1000)
	o.Update()
	if o.Distance != 5 {
		t.Fatalf("Distance=%v; want min 5", o.Distance)
	}
	o.Zoom(-1000)
	o.Update()
	if o.Distance != 30 {
		t.Fatalf("Distance=%v; want max 30", o.Distance)
	}
}

func TestOrbit_PolarNeverReachesPole(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 15}, [3]float32{}, 5, 30, 1)
	o.Rotate(0, 1e6)
	o.Update()
	if o.Polar < minPolar {
		t.Fatalf("Polar=%v below %v", o.Polar, minPolar)
	}
}
