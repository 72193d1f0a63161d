package differ

import (
	"sync"

	"github.com/driftscan/driftscan/pkg/types"
)

// classifyParallel fans address classification out over a worker pool. Each
// worker writes into its own slot of the result slice, so the output order
// matches the sorted address order regardless of completion order. The input
// maps are read-only throughout.
func (c *Classifier) classifyParallel(addrs []string, old, new types.ResourceMap) []types.ChangeRecord {
	records := make([]types.ChangeRecord, len(addrs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				addr := addrs[i]
				before, hasBefore := old[addr]
				after, hasAfter := new[addr]
				records[i] = c.classifyAddress(addr, before, hasBefore, after, hasAfter, c.orderSensitiveSnapshots)
			}
		}()
	}

	for i := range addrs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}
