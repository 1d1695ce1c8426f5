// Command mfopt runs model-free analyses described by YAML files.
//
// Usage:
//
//	mfopt minimise analysis.yaml --out results.yaml --xlsx results.xlsx
//	mfopt select --method aic m1.yaml m2.yaml m3.yaml
//	mfopt catalogue
//
// Settings of the optimiser, montecarlo and eliminate sections can be
// overridden by flags or MFOPT_* environment variables.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
