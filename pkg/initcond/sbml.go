package initcond

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/sparced/benchviz/pkg/errors"
)

// ZeroThreshold is the largest concentration treated as zero.
const ZeroThreshold = 1e-6

// Species is one SBML species.
type Species struct {
	ID            string
	Name          string
	Compartment   string
	Concentration float64 // 0 when the model sets none
}

// Model is the subset of an SBML model needed for initial conditions.
type Model struct {
	ID      string
	Species []Species // document order, species without id dropped
}

type sbmlDoc struct {
	Model struct {
		ID      string        `xml:"id,attr"`
		Species []sbmlSpecies `xml:"listOfSpecies>species"`
	} `xml:"model"`
}

type sbmlSpecies struct {
	ID                   string `xml:"id,attr"`
	Name                 string `xml:"name,attr"`
	Compartment          string `xml:"compartment,attr"`
	InitialConcentration string `xml:"initialConcentration,attr"`
}

// ParseSBML decodes an SBML document. Non-UTF-8 documents are decoded
// according to their XML declaration.
func ParseSBML(r io.Reader) (*Model, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc sbmlDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse sbml")
	}

	m := &Model{ID: doc.Model.ID}
	for _, s := range doc.Model.Species {
		if s.ID == "" {
			continue
		}
		sp := Species{ID: s.ID, Name: s.Name, Compartment: s.Compartment}
		if v := strings.TrimSpace(s.InitialConcentration); v != "" {
			c, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"species %s: invalid initialConcentration %q", s.ID, s.InitialConcentration)
			}
			sp.Concentration = c
		}
		m.Species = append(m.Species, sp)
	}
	return m, nil
}

// LoadSBML reads and parses an SBML file.
func LoadSBML(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "sbml model not found: %s", path)
		}
		return nil, fmt.Errorf("open sbml: %w", err)
	}
	defer f.Close()
	return ParseSBML(f)
}

// InitialConditions returns the clamped concentrations and the species ids,
// index-aligned and in document order.
func (m *Model) InitialConditions() (values []float64, names []string) {
	values = make([]float64, len(m.Species))
	names = make([]string, len(m.Species))
	for i, s := range m.Species {
		values[i] = Clamp(s.Concentration)
		names[i] = s.ID
	}
	return values, names
}

// Clamp returns 0 for concentrations at or below ZeroThreshold.
func Clamp(v float64) float64 {
	if v <= ZeroThreshold {
		return 0
	}
	return v
}

// LoadInitialConditions reads the model at path and returns its initial
// concentrations with perturbations applied. Perturbed values are not
// clamped.
func LoadInitialConditions(path string, perts []Perturbation) ([]float64, []string, error) {
	m, err := LoadSBML(path)
	if err != nil {
		return nil, nil, err
	}
	values, names := m.InitialConditions()
	return ApplyPerturbations(values, names, perts), names, nil
}
