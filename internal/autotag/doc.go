// Package autotag reconciles local library items against canonical catalog
// metadata and scores how well each candidate release or track fits.
//
// The pipeline: CurrentMetadata derives consensus search terms from the
// items; a Matcher pairs items with candidate tracks via an optimal
// assignment, accumulates weighted Distance penalties per field, filters
// and deduplicates candidates, and classifies the ranked result into a
// Recommendation. TagAlbum and TagItem sequence the whole flow against a
// catalog Source.
//
// All computation is synchronous and free of shared mutable state; every
// call builds its own candidate set, so independent reconciliations may run
// concurrently.
package autotag
