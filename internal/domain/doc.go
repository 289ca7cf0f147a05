// Package domain models floodplain soil-survey samples and the
// multi-criteria suitability scoring applied to them.
//
// # Data Source
//
// Samples follow the layout of the classic Meuse river bank soil
// survey: one row per auger location with projected x/y coordinates
// (meters) and five raw attributes. The CSV loader in
// internal/adapter/csvsource expects these columns:
//
//	x, y       projected coordinates in meters
//	ffreq      flood-frequency class: "1" (annual), "2" (once per
//	           decade), "3" (once in fifty years)
//	landuse    land-use code, e.g. "Ah", "W", "DEN"
//	lead       topsoil lead concentration, ppm
//	cadmium    topsoil cadmium concentration, ppm
//	elev       elevation above local river datum, meters
//
// # Scoring Conventions
//
// Each attribute becomes a factor on [0,1]:
//
//	ffreq      recoded to return-period years via a lookup table
//	           (1 -> 1y, 2 -> 10y, 3 -> 50y), then divided by the
//	           table maximum. Rare flooding scores high.
//	landuse    recoded to a suitability tier 0-3 via a lookup table,
//	           then divided by the table maximum. Codes missing from
//	           the table take the table default (0); the distinct
//	           unmatched codes are reported so data-quality problems
//	           stay visible.
//	lead       divided by the observed maximum and inverted
//	           (1 - v/max). Less contamination scores high.
//	cadmium    same as lead.
//	elev       divided by the observed maximum. Higher ground scores
//	           high.
//
// Factors combine multiplicatively, each raised to its weight
// (default 1), so a single zero factor vetoes the location. The
// combined scores are renormalized so the best location scores
// exactly 1.
//
// Categorical tables are scaled by their own maximum rather than the
// per-run observed maximum: the tier scale is a property of the
// policy table, and a point's factor should not depend on which other
// codes happen to appear in the same file.
//
// # Run IDs
//
// Run IDs are deterministic SHA-256 hashes of the input paths and
// interpolation parameters. Re-submitting the same request produces
// the same ID, which makes downstream consumers idempotent and replay
// safe. See [NewRunID].
package domain
