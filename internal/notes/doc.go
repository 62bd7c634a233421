// Package notes implements the release-notes transformation pipeline.
//
// Raw changelog markdown, as generated by the hosting service, is split into
// per-category sections, optionally cleaned of conventional-commit prefixes,
// optionally consolidated so repeated automated dependency updates collapse
// into one entry, optionally wrapped in <details> blocks when a section is
// long, and finally threaded back into the original document so header and
// footer prose survive byte-for-byte.
//
// Every stage is a pure function over SectionData and never mutates its
// input. Generator sequences the stages and applies header/footer templates.
package notes
