// Package platform maps library folder names to universal platform slugs and
// the platform ids each metadata provider expects.
package platform
