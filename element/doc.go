// Package element defines LegoPageElement, the tagged tree of domain types a
// classified page is built from: Page, Step, PartsList, Part, Diagram, and
// the rest. Every concrete type carries a bounding box and its already-built
// typed children — this package only ever holds the result of a successful
// build, never a candidate or an in-progress guess.
package element
