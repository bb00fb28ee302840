package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"reflect"

	"node-manager/core/manifest"
	"node-manager/core/node"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("usage: debug_compare <declared.yaml> <stored.yaml>")
		os.Exit(2)
	}

	// Test 1: Load the declared manifest
	fmt.Println("=== TEST 1: Manifest Loading ===")
	records, err := manifest.LoadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Total declared records loaded: %d\n", len(records))
	for _, r := range records {
		fmt.Printf("  hostname=%s ip=%s gpu_type=%s fields=%d\n",
			r.Hostname, r.IP, r.GPUType, len(r.CanonicalMapping()))
	}
	if len(records) == 0 {
		log.Fatal("manifest contains no records")
	}

	// Test 2: Decode the stored document
	fmt.Println("\n=== TEST 2: Stored Document Decoding ===")
	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}
	stored, err := node.DecodeMapping(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Stored document decoded: %d fields\n", len(stored))

	// Test 3: Compare the first declared record against the stored document
	fmt.Println("\n=== TEST 3: Comparison ===")
	rec := records[0]
	result := rec.CompareAgainst(stored)
	strict := rec.CompareStrict(stored)

	fmt.Printf("Status: %s\n", result.Status)
	if len(result.Mismatches) > 0 {
		fmt.Println("Mismatches:")
		for _, m := range result.Mismatches {
			fmt.Printf("  - %s\n", m.String())
		}
	}
	if len(result.ExtraKeys) > 0 {
		fmt.Printf("Declared but absent from store: %v\n", result.ExtraKeys)
	}
	if len(strict.UnexpectedKeys) > 0 {
		fmt.Printf("Stored but never declared: %v\n", strict.UnexpectedKeys)
	}

	// Test 4: Round-trip the declared record through serialization
	fmt.Println("\n=== TEST 4: Serialization Round-Trip ===")
	raw, err := rec.Serialize()
	if err != nil {
		log.Fatal(err)
	}
	decoded, err := node.DecodeMapping(raw)
	if err != nil {
		log.Fatal(err)
	}
	if reflect.DeepEqual(rec.CanonicalMapping(), decoded) {
		fmt.Println("Round-trip is lossless")
	} else {
		fmt.Println("ROUND-TRIP MISMATCH: decoded document differs from canonical mapping")
	}

	// Save detailed output
	output := map[string]interface{}{
		"declared_records": len(records),
		"stored_fields":    len(stored),
		"status":           result.Status,
		"comparison":       result,
		"strict":           strict,
	}
	out, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_compare.json", out, 0644)

	fmt.Println("\nDebug complete. Check debug_compare.json for details.")
}
