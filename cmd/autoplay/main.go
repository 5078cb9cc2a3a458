// Package main - autoplay
// Load generator and soak tester for the newsroom server.
// Simulates concurrent editors spamming the REST command API while
// listening to the WebSocket push stream.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Config for the autoplay run
type Config struct {
	ServerURL    string
	WSURL        string
	NumEditors   int
	Interval     time.Duration
	TestDuration time.Duration
}

// Stats tracks performance metrics
type Stats struct {
	CommandsSent   int64
	PushesReceived int64
	Errors         int64
	Latencies      []time.Duration
	mu             sync.Mutex
}

var articleTypes = []string{
	"entertainment",
	"listicle",
	"science",
	"breaking",
}

var topics = []string{
	"Cheese Heist at City Hall",
	"Sewer Property Prices Hit Record High",
	"Local Cat Denies All Allegations",
	"Ten Crumbs You Won't Believe Exist",
	"Whisker Fashion Week Roundup",
	"Underground Tunnel Expansion Approved",
	"Mysterious Glow in the Pantry District",
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Server base URL")
	wsURL := flag.String("ws", "ws://localhost:8080/ws", "WebSocket URL")
	numEditors := flag.Int("editors", 10, "Number of concurrent editors")
	interval := flag.Duration("interval", 500*time.Millisecond, "Command interval per editor")
	duration := flag.Duration("duration", 60*time.Second, "Test duration")
	flag.Parse()

	config := Config{
		ServerURL:    *serverURL,
		WSURL:        *wsURL,
		NumEditors:   *numEditors,
		Interval:     *interval,
		TestDuration: *duration,
	}

	fmt.Println("=========================================")
	fmt.Println("AUTOPLAY - Newsroom Load Generator")
	fmt.Println("=========================================")
	fmt.Printf("Server:   %s\n", config.ServerURL)
	fmt.Printf("Editors:  %d\n", config.NumEditors)
	fmt.Printf("Interval: %v\n", config.Interval)
	fmt.Printf("Duration: %v\n", config.TestDuration)
	fmt.Println("=========================================")

	ctx, cancel := context.WithTimeout(context.Background(), config.TestDuration)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupt received, stopping...")
		cancel()
	}()

	stats := runAutoplay(ctx, config)
	printResults(stats, config)
}

func runAutoplay(ctx context.Context, config Config) *Stats {
	stats := &Stats{
		Latencies: make([]time.Duration, 0, 10000),
	}

	var wg sync.WaitGroup

	fmt.Println("\nStarting editors...")

	for i := 0; i < config.NumEditors; i++ {
		wg.Add(1)
		go func(editorID int) {
			defer wg.Done()
			runEditor(ctx, editorID, config, stats)
		}(i)

		// Stagger starts to avoid thundering herd
		time.Sleep(10 * time.Millisecond)
	}

	fmt.Printf("All %d editors started\n\n", config.NumEditors)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sent := atomic.LoadInt64(&stats.CommandsSent)
				recv := atomic.LoadInt64(&stats.PushesReceived)
				errs := atomic.LoadInt64(&stats.Errors)
				fmt.Printf("Progress: Commands=%d Pushes=%d Errors=%d\n", sent, recv, errs)
			}
		}
	}()

	wg.Wait()
	return stats
}

func runEditor(ctx context.Context, editorID int, config Config, stats *Stats) {
	// Every editor also listens to the push stream, like a real client.
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.WSURL, nil)
	if err != nil {
		log.Printf("Editor %d: WebSocket connection failed: %v", editorID, err)
		atomic.AddInt64(&stats.Errors, 1)
	} else {
		defer conn.Close()
		go func() {
			for {
				_, _, err := conn.ReadMessage()
				if err != nil {
					return
				}
				atomic.AddInt64(&stats.PushesReceived, 1)
			}
		}()
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	ticker := time.NewTicker(config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			endpoint, payload := generateRandomCommand()
			start := time.Now()

			if err := postJSON(ctx, httpClient, config.ServerURL+endpoint, payload); err != nil {
				atomic.AddInt64(&stats.Errors, 1)
				continue
			}

			latency := time.Since(start)
			atomic.AddInt64(&stats.CommandsSent, 1)

			stats.mu.Lock()
			stats.Latencies = append(stats.Latencies, latency)
			stats.mu.Unlock()
		}
	}
}

// generateRandomCommand picks a weighted random editor action. Committing
// articles dominates, with occasional hires, the way a human plays.
func generateRandomCommand() (string, map[string]interface{}) {
	roll := rand.Float64()

	if roll < 0.15 {
		return "/api/hire", map[string]interface{}{}
	}

	draft := map[string]interface{}{
		"topic": topics[rand.Intn(len(topics))],
		"type":  articleTypes[rand.Intn(len(articleTypes))],
		"qualities": map[string]interface{}{
			"investigation": map[string]float64{
				"background": rand.Float64() * 100,
				"original":   rand.Float64() * 100,
				"factCheck":  rand.Float64() * 100,
			},
			"writing": map[string]float64{
				"engagement": rand.Float64() * 100,
				"depth":      rand.Float64() * 100,
			},
			"publishing": map[string]float64{
				"editing": rand.Float64() * 100,
				"visuals": rand.Float64() * 100,
			},
		},
	}
	return "/api/articles/commit", map[string]interface{}{"draft": draft}
}

func postJSON(ctx context.Context, client *http.Client, url string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 409 is the server declining a hire for cash reasons; not an error.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func printResults(stats *Stats, config Config) {
	fmt.Println("\n=========================================")
	fmt.Println("AUTOPLAY RESULTS")
	fmt.Println("=========================================")

	sent := atomic.LoadInt64(&stats.CommandsSent)
	recv := atomic.LoadInt64(&stats.PushesReceived)
	errs := atomic.LoadInt64(&stats.Errors)

	fmt.Printf("Commands Sent:   %d\n", sent)
	fmt.Printf("Pushes Received: %d\n", recv)
	fmt.Printf("Errors:          %d\n", errs)
	fmt.Printf("Error Rate:      %.2f%%\n", float64(errs)/float64(sent+1)*100)

	throughput := float64(sent) / config.TestDuration.Seconds()
	fmt.Printf("Throughput:      %.2f cmd/sec\n", throughput)

	if len(stats.Latencies) > 0 {
		var total time.Duration
		var min, max time.Duration = stats.Latencies[0], stats.Latencies[0]

		for _, l := range stats.Latencies {
			total += l
			if l < min {
				min = l
			}
			if l > max {
				max = l
			}
		}

		avg := total / time.Duration(len(stats.Latencies))

		fmt.Printf("\nLatency:\n")
		fmt.Printf("  Min: %v\n", min)
		fmt.Printf("  Avg: %v\n", avg)
		fmt.Printf("  Max: %v\n", max)
	}

	fmt.Println("\n-----------------------------------------")
	if errs == 0 {
		fmt.Println("TEST PASSED: No errors under load")
	} else if float64(errs)/float64(sent+1) < 0.05 {
		fmt.Println("TEST WARNING: Some errors detected")
	} else {
		fmt.Println("TEST FAILED: High error rate")
	}
	fmt.Println("=========================================")

	results := map[string]interface{}{
		"commands_sent":      sent,
		"pushes_received":    recv,
		"errors":             errs,
		"throughput_per_sec": throughput,
		"config": map[string]interface{}{
			"editors":  config.NumEditors,
			"interval": config.Interval.String(),
			"duration": config.TestDuration.String(),
		},
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	os.WriteFile("autoplay_results.json", jsonData, 0644)
	fmt.Println("\nResults saved to autoplay_results.json")
}
