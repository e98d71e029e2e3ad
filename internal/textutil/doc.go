// Package textutil provides text comparison utilities for metadata matching.
//
// The primary use cases are:
//   - Computing a normalized dissimilarity between two metadata strings
//   - Cleaning titles for catalog search queries
//
// StringDistance is tolerant of the noise typical in music metadata: case,
// diacritics, leading articles, "feat." credits, bracketed qualifiers, and
// "Title, The" rotations all count for less than genuine title differences.
package textutil
