// Package physics holds the physical constants and nuclear properties used by
// the relaxation physics function.
//
// Constants are in SI units. Gyromagnetic ratios are in rad·s⁻¹·T⁻¹ and are
// looked up by nucleus name ("1H", "13C", "15N", ...). Frequencies are given
// in Hz and converted to angular frequencies on demand.
package physics
