// Package launchbox reads the LaunchBox Games Database dump (Metadata.xml).
//
// The file is large, so it is streamed once on first use and indexed by
// platform, database id and normalized name. No network access is needed
// except for the image URLs the entries reference.
package launchbox
