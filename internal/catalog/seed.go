package catalog

import _ "embed"

//go:embed seed/products.json
var seedData []byte
