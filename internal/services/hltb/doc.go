// Package hltb searches HowLongToBeat. The site has no public API; the
// client posts the same search payload the website uses and therefore
// sends browser-like Origin and Referer headers.
package hltb
