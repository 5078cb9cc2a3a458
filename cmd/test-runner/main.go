// Package main - test_runner.go
// Executable to run the long-form economy soak scenarios.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/RDelgadoM/RatNewsNetwork/server/test"
)

func main() {
	seed := flag.Int64("seed", 42, "RNG seed for the scenario run")
	flag.Parse()

	fmt.Println("RAT NEWS NETWORK - ECONOMY SOAK SUITE")
	fmt.Println("================================================")

	fmt.Printf("\nRunning scenario: The First Year (seed %d)...\n", *seed)
	scenario := test.NewFirstYearScenario(*seed)
	scenario.Run()

	results := scenario.Results()
	passed := 0
	failed := 0

	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("   Passed: %d\n", passed)
	fmt.Printf("   Failed: %d\n", failed)

	if failed > 0 {
		fmt.Println("\nThe economy needs recalibration")
		os.Exit(1)
	}
	fmt.Println("\nThe newsroom is ready for deployment")
}
