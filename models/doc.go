// Package models is the catalogue of model-free models.
//
// A model is an equation type plus an ordered list of parameter names. The
// catalogue enumerates the classic models in four structural blocks
//
//	m0–m9    no CSA, no bond length
//	m10–m19  CSA optimised
//	m20–m29  bond length optimised
//	m30–m39  bond length and CSA optimised
//
// and their local correlation time twins tm0–tm39 (local_tm prefixed).
// Create validates hand-built parameter combinations against the rules of the
// model-free equations.
//
// Parameter order matters: it is the order of the spin block in the
// optimisation parameter vector.
package models
