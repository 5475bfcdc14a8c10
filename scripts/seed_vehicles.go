// seed_vehicles.go — standalone script to load a JSON vehicle list into the catalog via the API.
//
// Usage:
//
//	go run scripts/seed_vehicles.go -file vehicles.json -api http://localhost:8700 -token <admin token>
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type seedVehicle struct {
	Name             string   `json:"name"`
	Brand            string   `json:"brand,omitempty"`
	Category         string   `json:"category,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Mileage          *float64 `json:"mileage,omitempty"`
	PerformanceScore *float64 `json:"performance_score,omitempty"`
	Transmission     string   `json:"transmission,omitempty"`
	ImageURL         string   `json:"image,omitempty"`
}

func main() {
	filePath := flag.String("file", "vehicles.json", "path to JSON vehicle list")
	apiURL := flag.String("api", "http://localhost:8700", "API base URL")
	token := flag.String("token", "", "admin token")
	dryRun := flag.Bool("dry-run", false, "print vehicles without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read %s: %v", *filePath, err)
	}

	var vehicles []seedVehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		log.Fatalf("parse %s: %v", *filePath, err)
	}

	for _, v := range vehicles {
		if v.Name == "" {
			log.Printf("skipping vehicle without name: %+v", v)
			continue
		}
		if *dryRun {
			fmt.Printf("would create: %s (%s)\n", v.Name, v.Brand)
			continue
		}

		body, _ := json.Marshal(v)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/vehicles", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Fatalf("post %s: %v", v.Name, err)
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			log.Printf("create %s: unexpected status %d", v.Name, resp.StatusCode)
			continue
		}
		fmt.Printf("created: %s\n", v.Name)
	}
}
