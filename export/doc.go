// Package export writes the results of a pipe as a YAML document or an XLSX
// workbook.
//
// FromPipe flattens a pipe into a Results value: the tensor, the global
// statistics and, per spin, the model, the parameter values with their
// errors and the minimisation statistics. WriteYAML and ReadYAML use
// gopkg.in/yaml.v3; WriteXLSX streams a workbook with a "Spins" and a
// "Tensor" sheet through excelize.
package export
