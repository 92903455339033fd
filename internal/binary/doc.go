// Package binary acquires the prebuilt Typst binary for a resolved version.
//
// # Acquisition
//
// Given a resolved version and an ordered list of candidate targets, the
// acquirer tries each candidate's release archive in turn:
//
//  1. Download <base>/v<version>/typst-<target><ext> to the scratch dir
//  2. Verify the download exists and is non-empty
//  3. Extract the archive (zip on Windows, tar.gz elsewhere)
//  4. Verify the binary sits at the top level of the extraction output
//  5. Register the extraction directory in the runner tool cache
//
// A per-candidate failure in steps 1-2 moves on to the next candidate; this
// fallback search is the only non-fatal recovery in the whole run. Failures
// in steps 3-5 are fatal: at that point an artifact was chosen and a broken
// archive means the release itself is unusable.
//
// # Conventions
//
// Windows archives are zips containing typst.exe; every other platform gets
// a tar.gz containing typst. Both place the binary at the archive top level.
package binary
