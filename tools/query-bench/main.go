package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080/series/orders", "Target URL for series queries")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 100, "Requests per second limit")
	span := flag.Duration("span", 90*time.Minute, "Query window span")
	flag.Parse()

	log.Printf("Starting query load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d, Span: %s", *concurrency, *duration, *rps, *span)

	var wg sync.WaitGroup
	var successCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 100) // Allow bursts up to 100

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 10 * time.Second,
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
					limiter.Wait(ctx) // Wait for token from rate limiter

					end := time.Now().UTC().Truncate(time.Minute)
					params := url.Values{}
					params.Set("start", end.Add(-*span).Format(time.RFC3339))
					params.Set("end", end.Format(time.RFC3339))
					target := fmt.Sprintf("%s?%s", *baseURL, params.Encode())

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
					if err != nil {
						continue // Should not happen
					}
					req.Header.Set("X-Request-Id", uuid.NewString())

					resp, err := client.Do(req)
					if err != nil {
						errorCount.Add(1)
						continue
					}

					if resp.StatusCode == http.StatusOK {
						successCount.Add(1)
					} else {
						errorCount.Add(1)
					}
					io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
			}
		}(i)
	}

	wg.Wait()

	totalRequests := successCount.Load() + errorCount.Load()
	actualRPS := float64(totalRequests) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", totalRequests)
	log.Printf("Successful (200 OK): %d", successCount.Load())
	log.Printf("Errors: %d", errorCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}
