// Package data embeds the CLDR RBNF rule files shipped with the module.
package data

import "embed"

// RBNF holds one LDML file per language under rbnf/, named <language>.xml.
//
//go:embed rbnf/*.xml
var RBNF embed.FS

// RBNFDir is the directory inside RBNF that holds the rule files.
const RBNFDir = "rbnf"
