package viz

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sparced/benchviz/pkg/errors"
)

// Problem is the subset of a PEtab problem file benchviz reads.
type Problem struct {
	FormatVersion any            `yaml:"format_version"`
	ParameterFile any            `yaml:"parameter_file"`
	Problems      []ProblemFiles `yaml:"problems"`

	dir string
}

// ProblemFiles lists the files of one PEtab sub-problem.
type ProblemFiles struct {
	SBMLFiles          []string `yaml:"sbml_files"`
	ConditionFiles     []string `yaml:"condition_files"`
	MeasurementFiles   []string `yaml:"measurement_files"`
	ObservableFiles    []string `yaml:"observable_files"`
	VisualizationFiles []string `yaml:"visualization_files"`
}

// LoadProblem parses a PEtab problem YAML file. Relative paths in the file
// are resolved against its directory.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "problem file %s", path)
	}
	if err != nil {
		return nil, err
	}
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse problem file %s", path)
	}
	if len(p.Problems) == 0 {
		return nil, errors.NewConfigError("problems", "problem file %s lists no problems", path)
	}
	p.dir = filepath.Dir(path)
	return &p, nil
}

// VisualizationFiles returns the resolved visualization table paths of all
// sub-problems.
func (p *Problem) VisualizationFiles() []string {
	var out []string
	for _, sp := range p.Problems {
		out = append(out, p.resolve(sp.VisualizationFiles)...)
	}
	return out
}

// SBMLFiles returns the resolved SBML model paths of all sub-problems.
func (p *Problem) SBMLFiles() []string {
	var out []string
	for _, sp := range p.Problems {
		out = append(out, p.resolve(sp.SBMLFiles)...)
	}
	return out
}

// LoadRows reads and concatenates every visualization table of the problem.
func (p *Problem) LoadRows() ([]Row, error) {
	files := p.VisualizationFiles()
	if len(files) == 0 {
		return nil, errors.NewConfigError("visualization_files", "problem lists no visualization files")
	}
	var rows []Row
	for _, f := range files {
		r, err := LoadTable(f)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r...)
	}
	return rows, nil
}

func (p *Problem) resolve(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, f := range paths {
		if !filepath.IsAbs(f) {
			f = filepath.Join(p.dir, f)
		}
		out = append(out, f)
	}
	return out
}
