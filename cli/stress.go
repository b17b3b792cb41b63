package main

// skintool stress:
// Pseudo-benchmark for a running daemon
//
// the 'how'
// "workers" - simulated game threads
// each one asks for random registered content ids over and over, the way
// the game does while loading a character select screen. workers share the
// slots, so this also shakes out races between renders of the same slot

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type (
	stressResult struct {
		ok, fallback, failed int
		bytes                int64
		slowest              time.Duration
	}

	contentInfo struct {
		ID       uint64 `json:"id"`
		Capacity uint32 `json:"capacity"`
	}
)

func (r *stressResult) add(o stressResult) {
	r.ok += o.ok
	r.fallback += o.fallback
	r.failed += o.failed
	r.bytes += o.bytes
	r.slowest = max(r.slowest, o.slowest)
}

func stressCmd() *cobra.Command {
	var (
		addr     string
		workers  int
		duration time.Duration
	)

	c := &cobra.Command{
		Use:   "stress",
		Short: "Hammer a running daemon with content requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := stress(addr, workers, duration)
			if err != nil {
				return err
			}

			total := r.ok + r.fallback + r.failed
			cmd.Printf("%d requests in %v (%.0f/s)\n", total, duration, float64(total)/duration.Seconds())
			cmd.Printf("generated %d, fell back %d, failed %d, %d bytes, slowest %v\n", r.ok, r.fallback, r.failed, r.bytes, r.slowest)
			return nil
		},
	}

	c.Flags().StringVarP(&addr, "addr", "a", "http://127.0.0.1:9080", "daemon http address")
	c.Flags().IntVarP(&workers, "workers", "w", 8, "concurrent workers")
	c.Flags().DurationVarP(&duration, "duration", "d", 10*time.Second, "how long to run")

	return c
}

func fetchContents(cl *http.Client, addr string) ([]contentInfo, error) {
	resp, err := cl.Get(addr + "/contents")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /contents: %s", resp.Status)
	}

	var cs []contentInfo
	if err := json.NewDecoder(resp.Body).Decode(&cs); err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("daemon registered no content")
	}
	return cs, nil
}

func stress(addr string, workers int, d time.Duration) (stressResult, error) {
	cl := &http.Client{
		Timeout: 10 * time.Second,
	}

	cs, err := fetchContents(cl, addr)
	if err != nil {
		return stressResult{}, err
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total stressResult
	)
	stop := time.Now().Add(d)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := worker(cl, addr, cs, stop)

			mu.Lock()
			total.add(r)
			mu.Unlock()
		}()
	}

	wg.Wait()
	return total, nil
}

func worker(cl *http.Client, addr string, cs []contentInfo, stop time.Time) stressResult {
	var r stressResult

	for time.Now().Before(stop) {
		c := cs[rand.IntN(len(cs))]

		s := time.Now()
		resp, err := cl.Get(fmt.Sprintf("%s/content/%#x", addr, c.ID))
		if err != nil {
			r.failed++
			continue
		}
		n, err := io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		r.slowest = max(r.slowest, time.Since(s))

		switch {
		case err != nil:
			r.failed++
		case resp.StatusCode == http.StatusNotFound:
			r.fallback++
		case resp.StatusCode == http.StatusOK && n == int64(c.Capacity):
			r.ok++
			r.bytes += n
		default:
			r.failed++
		}
	}

	return r
}
