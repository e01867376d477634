package color

import (
	"errors"
	"math/rand"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in       string
		expected RGB
		wantErr  bool
	}{
		{"#f87171", RGB{248, 113, 113}, false},
		{"f87171", RGB{248, 113, 113}, false},
		{"#FFFFFF", RGB{255, 255, 255}, false},
		{"#000000", RGB{0, 0, 0}, false},
		{"#zzzzzz", RGB{}, true},
		{"", RGB{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHex(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q) expected error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) failed: %v", tc.in, err)
			}
			if got != tc.expected {
				t.Errorf("ParseHex(%q) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{248, 113, 113}).Hex(); got != "#f87171" {
		t.Errorf("Hex() = %q, expected #f87171", got)
	}
}

func TestNewPaletteErrors(t *testing.T) {
	if _, err := NewPalette(); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("NewPalette() error = %v, expected ErrEmptyPalette", err)
	}

	_, err := NewPalette(MustColor("red", "#ff0000"), MustColor("red", "#ee0000"))
	if !errors.Is(err, ErrDuplicateColor) {
		t.Errorf("duplicate names error = %v, expected ErrDuplicateColor", err)
	}
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	palettes := []Palette{BasePalette, RushPalette, HuntPalette}

	for _, p := range palettes {
		for i := 0; i < 500; i++ {
			s := RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
			got := Nearest(s, p)

			if _, ok := p.Lookup(got.Name); !ok {
				t.Fatalf("Nearest returned %q which is not in palette", got.Name)
			}
			gotDist := Distance(s, got.RGB)
			for _, c := range p.Colors() {
				if Distance(s, c.RGB) < gotDist {
					t.Fatalf("sample %v: %q at %.3f is closer than %q at %.3f",
						s, c.Name, Distance(s, c.RGB), got.Name, gotDist)
				}
			}
		}
	}
}

func TestNearestTieBreaksToFirst(t *testing.T) {
	p := MustPalette(
		Color{Name: "a", RGB: RGB{0, 0, 0}},
		Color{Name: "b", RGB: RGB{20, 0, 0}},
	)
	// Equidistant from both entries.
	got := Nearest(RGB{10, 0, 0}, p)
	if got.Name != "a" {
		t.Errorf("tie went to %q, expected first entry 'a'", got.Name)
	}

	reordered := MustPalette(p.At(1), p.At(0))
	if Nearest(RGB{10, 0, 0}, reordered).Name != "b" {
		t.Error("tie should follow palette order")
	}
}

func TestNearestDeterministic(t *testing.T) {
	s := RGB{123, 45, 200}
	first := Nearest(s, BasePalette)
	for i := 0; i < 100; i++ {
		if got := Nearest(s, BasePalette); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestNearestCameraNeighbourhood(t *testing.T) {
	// Samples around {250,80,80} must all resolve to the hunt palette's red (#f87171).
	for dr := -5; dr <= 5; dr++ {
		for dg := -10; dg <= 10; dg += 2 {
			for db := -10; db <= 10; db += 2 {
				s := RGB{uint8(250 + dr), uint8(80 + dg), uint8(80 + db)}
				if got := Nearest(s, HuntPalette); got.Name != "red" {
					t.Fatalf("sample %v matched %q, expected red", s, got.Name)
				}
			}
		}
	}
}

func TestNearestEmptyPalettePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Nearest on zero palette should panic")
		}
	}()
	Nearest(RGB{}, Palette{})
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name     string
		samples  []RGB
		expected RGB
	}{
		{"empty", nil, RGB{}},
		{"single", []RGB{{10, 20, 30}}, RGB{10, 20, 30}},
		{"exact mean", []RGB{{0, 0, 0}, {100, 50, 200}}, RGB{50, 25, 100}},
		{"rounds half up", []RGB{{0, 0, 0}, {1, 3, 255}}, RGB{1, 2, 128}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Average(tc.samples); got != tc.expected {
				t.Errorf("Average() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPaletteWithout(t *testing.T) {
	p, err := BasePalette.Without("white")
	if err != nil {
		t.Fatalf("Without() failed: %v", err)
	}
	if p.Len() != BasePalette.Len()-1 {
		t.Errorf("Len() = %d, expected %d", p.Len(), BasePalette.Len()-1)
	}
	if _, ok := p.Lookup("white"); ok {
		t.Error("white should have been removed")
	}

	if _, err := RushPalette.Without(RushPalette.Names()...); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("removing everything error = %v, expected ErrEmptyPalette", err)
	}
}

func TestBucketClassify(t *testing.T) {
	b, err := WarmCool.Classify("red")
	if err != nil || b != BucketWarm {
		t.Errorf("Classify(red) = %v, %v; expected warm", b, err)
	}

	_, err = WarmCool.Classify("chartreuse")
	if !errors.Is(err, ErrUnclassified) {
		t.Errorf("Classify(unknown) error = %v, expected ErrUnclassified", err)
	}
}

func TestBucketTableValidate(t *testing.T) {
	if err := WarmCool.Validate(BasePalette); err != nil {
		t.Errorf("default table should cover base palette: %v", err)
	}

	partial := BucketTable{"red": BucketWarm}
	err := partial.Validate(RushPalette)
	if !errors.Is(err, ErrUnclassified) {
		t.Errorf("Validate() error = %v, expected ErrUnclassified", err)
	}
}

func TestNewBucketTableRejectsAmbiguous(t *testing.T) {
	_, err := NewBucketTable(map[Bucket][]string{
		BucketWarm: {"red", "purple"},
		BucketCool: {"blue", "purple"},
	})
	if err == nil {
		t.Error("expected error for colour in two buckets")
	}

	table, err := NewBucketTable(map[Bucket][]string{
		BucketWarm: {"red"},
		BucketCool: {"blue", "green"},
	})
	if err != nil {
		t.Fatalf("NewBucketTable() failed: %v", err)
	}
	if table["green"] != BucketCool {
		t.Errorf("green = %v, expected cool", table["green"])
	}
}

func TestParseBucket(t *testing.T) {
	tests := []struct {
		in   string
		want Bucket
		ok   bool
	}{
		{"warm", BucketWarm, true},
		{"W", BucketWarm, true},
		{" cool ", BucketCool, true},
		{"hot", BucketNone, false},
	}
	for _, tc := range tests {
		got, ok := ParseBucket(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseBucket(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
