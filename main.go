package main

import (
	"github.com/shopspring/decimal"
	"github.com/vasanthreddy12/e-commerce/cmd"
)

func main() {
	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cmd.Execute()
}
