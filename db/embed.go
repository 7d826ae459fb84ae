// Package db provides the embedded menu data file.
package db

import _ "embed"

// Menu contains the JSON catalog of items the shop sells.
//
//go:embed menu.json
var Menu []byte
