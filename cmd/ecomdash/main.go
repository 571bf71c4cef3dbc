// Command ecomdash computes e-commerce order analytics: category
// popularity, customer/seller geography, rating extremes, and RFM
// customer segmentation over an analyst-selected date range.
package main

import (
	"fmt"
	"os"

	"github.com/Rinduprawa/project-ecommerce/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
