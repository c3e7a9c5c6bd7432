// Package descriptor renders validated video metadata into XML asset
// descriptors and writes them into the output directory.
//
// The file name is derived from the sanitized video filename, so a descriptor
// is produced at most once per video for the lifetime of the output directory:
// a second Build for the same filename finds the file on disk and reports
// StatusExists without touching it. The uniqueId attribute is the MD5 of the
// raw filename, stable across runs and hosts.
package descriptor
