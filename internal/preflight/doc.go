// Package preflight provides readiness checks for the filesystem paths and
// metadata providers a library scan depends on.
//
// These checks run in two contexts:
//   - The scan command calls RunAll before walking the library and refuses to
//     start when a required check fails.
//   - The CLI "romm doctor" command displays every result, optionally probing
//     provider endpoints over the network.
//
// Provider checks only report credential presence unless Options.Online is set.
package preflight
