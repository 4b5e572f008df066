// Package romname parses ROM file names into a search term and the
// bracketed dump tags that surround it.
//
// File names follow the No-Intro/GoodTools conventions:
//
//	Legend of Zelda, The - A Link to the Past (USA) (Rev 1) [!].sfc
//
// Parse strips the extension and every parenthesised or bracketed tag,
// restores trailing articles, and classifies the tags into regions,
// revision, languages, a disc serial, and everything else. NormalizeName
// and Transliterate produce the comparison key and the ASCII search term
// used by providers that reject non-ASCII queries.
package romname
