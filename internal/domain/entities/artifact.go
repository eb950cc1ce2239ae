// Package entities defines core domain models and data structures.
package entities

// Artifact represents a spreadsheet produced from one archive member
type Artifact struct {
	Name   string // file name, <task>_<date>.xlsx
	Path   string
	Member string // archive member the report was read from
	Rows   int
	URL    string // set when the artifact was published
}
