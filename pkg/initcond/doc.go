// Package initcond reads species initial conditions from an SBML model.
//
// [LoadInitialConditions] parses the model's species list, zeroes
// concentrations at or below [ZeroThreshold], and applies perturbations:
//
//	values, names, err := initcond.LoadInitialConditions("SPARCED.xml", []initcond.Perturbation{
//	    {Name: "EGF", Value: 3.3e-4},
//	})
//
// Perturbations override species by exact, case-sensitive id. Names that do
// not match any species are ignored, and when a name is given more than once
// the last value wins.
package initcond
