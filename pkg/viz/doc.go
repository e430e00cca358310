// Package viz models the declarative visualization table that drives figure
// rendering.
//
// The table follows the PEtab visualization conventions: one row per data
// series, grouped into subplots by plotId. Rows are read-only and ordered;
// row order determines draw order.
//
// # Loading
//
// Tables are read from tab-separated files ([LoadTSV]), comma-separated
// files, or Excel workbooks ([LoadXLSX]). [LoadTable] dispatches on the file
// extension. A PEtab problem file ([LoadProblem]) can name the visualization
// tables and SBML models of a benchmark.
//
//	rows, err := viz.LoadTable("visualization.tsv")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(viz.PlotIDs(rows)) // distinct plot groups in first-appearance order
//
// Only the checks needed to render are performed: required columns must be
// present and axis scales must be recognised. Plot kinds are not validated
// here; an unknown kind surfaces when the figure is built.
package viz
