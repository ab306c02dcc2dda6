package synth

import (
	"bytes"
	"testing"
)

func TestDeriveParamsDeterministic(t *testing.T) {
	a := DeriveParams(42)
	b := DeriveParams(42)
	if a != b {
		t.Fatalf("DeriveParams(42) not deterministic: %+v vs %+v", a, b)
	}
}

func TestDeriveParamsRanges(t *testing.T) {
	for _, seed := range []int32{0, 1, 42, -5, 1 << 20} {
		p := DeriveParams(seed)
		if p.BaseFreq < 20 || p.BaseFreq >= 60 {
			t.Errorf("seed %d: base_freq out of range: %v", seed, p.BaseFreq)
		}
		if p.ModFreq < 2 || p.ModFreq >= 8 {
			t.Errorf("seed %d: mod_freq out of range: %v", seed, p.ModFreq)
		}
		if p.ModDepth < 0.1 || p.ModDepth >= 0.4 {
			t.Errorf("seed %d: mod_depth out of range: %v", seed, p.ModDepth)
		}
	}
}

func TestGratingFieldRowsIdentical(t *testing.T) {
	p := DeriveParams(1)
	field := GratingField(64, 8, p)
	first := field[:64]
	for y := 1; y < 8; y++ {
		row := field[y*64 : (y+1)*64]
		if !bytes.Equal(first, row) {
			t.Fatalf("row %d differs from row 0", y)
		}
	}
}

func TestBlockFieldConstantWithinTile(t *testing.T) {
	field := BlockField(16, 16, 9)
	// every pixel within an 8x8 tile must match the tile's (0,0) pixel.
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			want := field[(by*BlockSize)*16+bx*BlockSize]
			for y := by * BlockSize; y < (by+1)*BlockSize; y++ {
				for x := bx * BlockSize; x < (bx+1)*BlockSize; x++ {
					if got := field[y*16+x]; got != want {
						t.Fatalf("tile (%d,%d) not constant: (%d,%d)=%d want %d", bx, by, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(42, 64)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(42, 64)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("Generate(42, 64) is not deterministic")
	}
}

func TestGenerateDiffersBySeed(t *testing.T) {
	a, err := Generate(42, 64)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(43, 64)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.Equal(b) {
		t.Fatal("Generate produced identical output for different seeds")
	}
}

func TestStampMarkerCentres(t *testing.T) {
	img, err := Generate(1, 128)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// top_left, top_right, bottom_left sit on the white disk between their
	// innermost ring and the centre, so their exact centre stays bright.
	for _, p := range []struct{ x, y int }{
		{24, 24}, {128 - 24, 24}, {24, 128 - 24},
	} {
		r, g, b := img.At(p.x, p.y)
		if r < 200 || g < 200 || b < 200 {
			t.Errorf("expected a bright marker centre at (%d,%d), got (%d,%d,%d)", p.x, p.y, r, g, b)
		}
	}

	// bottom_right stamps a filled black disk over its white disk, so its
	// centre is dark.
	r, g, b := img.At(128-24, 128-24)
	if r > 50 || g > 50 || b > 50 {
		t.Errorf("expected a dark bottom_right centre, got (%d,%d,%d)", r, g, b)
	}
}
