package initcond

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sparced/benchviz/pkg/errors"
)

const testSBML = `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="http://www.sbml.org/sbml/level3/version1/core" level="3" version="1">
  <model id="toy">
    <listOfSpecies>
      <species id="A" compartment="cyto" initialConcentration="2.5"/>
      <species id="B" compartment="cyto" initialConcentration="1e-6"/>
      <species id="C" compartment="cyto" initialConcentration="1.000001e-6"/>
      <species id="" compartment="cyto" initialConcentration="4"/>
      <species id="D" compartment="nuc"/>
      <species id="E" compartment="nuc" initialConcentration="-3"/>
    </listOfSpecies>
  </model>
</sbml>
`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadInitialConditions(t *testing.T) {
	values, names, err := LoadInitialConditions(writeModel(t, testSBML), nil)
	if err != nil {
		t.Fatalf("LoadInitialConditions: %v", err)
	}
	wantNames := "A,B,C,D,E"
	if got := strings.Join(names, ","); got != wantNames {
		t.Errorf("names = %s, want %s", got, wantNames)
	}
	want := []float64{2.5, 0, 1.000001e-6, 0, 0}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("%s = %g, want %g", names[i], values[i], want[i])
		}
	}
}

func TestLoadInitialConditionsPerturbed(t *testing.T) {
	values, names, err := LoadInitialConditions(writeModel(t, testSBML), []Perturbation{
		{Name: "B", Value: 1e-9},
		{Name: "a", Value: 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	if names[1] != "B" || values[1] != 1e-9 {
		t.Errorf("perturbed B = %g, want unclamped 1e-9", values[1])
	}
	if values[0] != 2.5 {
		t.Errorf("A = %g, lowercase perturbation should not match", values[0])
	}
}

func TestClampBoundary(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1e-6, 0},
		{1.000001e-6, 1.000001e-6},
		{0, 0},
		{-1, 0},
		{5, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestApplyPerturbations(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		names  []string
		perts  []Perturbation
		want   []float64
	}{
		{
			name:   "single override",
			values: []float64{1, 2},
			names:  []string{"A", "B"},
			perts:  []Perturbation{{"A", 9}},
			want:   []float64{9, 2},
		},
		{
			name:   "unknown name ignored",
			values: []float64{1, 2},
			names:  []string{"A", "B"},
			perts:  []Perturbation{{"Z", 9}},
			want:   []float64{1, 2},
		},
		{
			name:   "last wins",
			values: []float64{1, 2},
			names:  []string{"A", "B"},
			perts:  []Perturbation{{"B", 3}, {"B", 4}},
			want:   []float64{1, 4},
		},
		{
			name:   "duplicate species names",
			values: []float64{1, 2, 3},
			names:  []string{"A", "B", "A"},
			perts:  []Perturbation{{"A", 0}},
			want:   []float64{0, 2, 0},
		},
		{
			name:   "none",
			values: []float64{1},
			names:  []string{"A"},
			want:   []float64{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := append([]float64(nil), tt.values...)
			got := ApplyPerturbations(tt.values, tt.names, tt.perts)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
			for i := range orig {
				if tt.values[i] != orig[i] {
					t.Fatal("input slice was modified")
				}
			}
		})
	}
}

func TestParsePerturbations(t *testing.T) {
	perts, err := ParsePerturbations([]string{"EGF=3.3e-4", " HRG = 1 "})
	if err != nil {
		t.Fatal(err)
	}
	if len(perts) != 2 || perts[0] != (Perturbation{"EGF", 3.3e-4}) || perts[1] != (Perturbation{"HRG", 1}) {
		t.Errorf("got %+v", perts)
	}

	for _, bad := range []string{"EGF", "=1", "EGF=x"} {
		if _, err := ParsePerturbations([]string{bad}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParsePerturbations(%q) err = %v", bad, err)
		}
	}
}

func TestParseSBMLLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<sbml><model id=\"m\"><listOfSpecies>" +
		"<species id=\"X\" name=\"caf\xe9\" initialConcentration=\"3\"/>" +
		"</listOfSpecies></model></sbml>"
	m, err := ParseSBML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseSBML: %v", err)
	}
	if len(m.Species) != 1 || m.Species[0].Name != "café" {
		t.Errorf("species = %+v", m.Species)
	}
}

func TestParseSBMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"malformed", "<sbml><model>", errors.ErrCodeInvalidFormat},
		{"bad number", `<sbml><model><listOfSpecies><species id="A" initialConcentration="lots"/></listOfSpecies></model></sbml>`, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSBML(strings.NewReader(tt.doc)); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := LoadSBML(filepath.Join(t.TempDir(), "missing.xml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}
