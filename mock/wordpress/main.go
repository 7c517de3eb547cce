package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

//go:embed data.json
var jsonData []byte

func main() {
	var records []json.RawMessage
	if err := json.Unmarshal(jsonData, &records); err != nil {
		log.Fatalf("[WordPress] bad data.json: %v", err)
	}

	http.HandleFunc("/wp-json/wp/v2/contractor", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		perPage := queryInt(r, "per_page", 10)
		page := queryInt(r, "page", 1)

		start := (page - 1) * perPage
		end := start + perPage
		if start > len(records) {
			start = len(records)
		}
		if end > len(records) {
			end = len(records)
		}

		totalPages := (len(records) + perPage - 1) / perPage

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-WP-Total", strconv.Itoa(len(records)))
		w.Header().Set("X-WP-TotalPages", strconv.Itoa(totalPages))
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(records[start:end]); err != nil {
			log.Printf("[WordPress] write error: %v", err)
		}

		log.Printf("[WordPress] %s %s?%s - 200 OK", r.Method, r.URL.Path, r.URL.RawQuery)
	})

	http.HandleFunc("/wp-json/wp/v2/contractor/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/contractor/")

		for _, record := range records {
			var probe struct {
				ID int `json:"id"`
			}
			if json.Unmarshal(record, &probe) == nil && strconv.Itoa(probe.ID) == id {
				w.Header().Set("Content-Type", "application/json")
				if _, err := w.Write(record); err != nil {
					log.Printf("[WordPress] write error: %v", err)
				}

				return
			}
		}

		http.Error(w, `{"code":"rest_post_invalid_id"}`, http.StatusNotFound)
	})

	http.HandleFunc("/wp-json/wp/v2/contractor_service_type", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		terms := `[
			{"id": 1, "name": "Energy Audit", "slug": "energy_audit"},
			{"id": 2, "name": "Weatherization", "slug": "weatherization"},
			{"id": 3, "name": "HVAC / Heat Pump", "slug": "hvac_heat_pump"},
			{"id": 4, "name": "Electrical", "slug": "electrical"},
			{"id": 5, "name": "Water Heater", "slug": "water_heater"},
			{"id": 6, "name": "Appliances", "slug": "appliances"}
		]`
		if _, err := w.Write([]byte(terms)); err != nil {
			log.Printf("[WordPress] write error: %v", err)
		}
	})

	log.Println("Mock WordPress API running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}

	return v
}
