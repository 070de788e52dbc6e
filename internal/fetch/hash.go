package fetch

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"runtime"
	"sync"
)

// Digest computation runs on a dedicated pool of workers so that CPU-bound
// hashing never executes inline on a goroutine that is servicing network
// I/O. The pool is shared process-wide and started on first use.

type hashJob struct {
	data []byte
	out  chan string
}

var (
	hashOnce sync.Once
	hashJobs chan hashJob
)

func startHashPool() {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	hashJobs = make(chan hashJob)
	for i := 0; i < workers; i++ {
		go func() {
			for job := range hashJobs {
				sum := sha1.Sum(job.data)
				job.out <- hex.EncodeToString(sum[:])
			}
		}()
	}
}

// Checksum computes the SHA-1 digest of data as a lowercase hex string. The
// work is handed to the hashing pool; a cancelled context while waiting for
// the pool surfaces as a TaskError.
func Checksum(ctx context.Context, data []byte) (string, error) {
	hashOnce.Do(startHashPool)

	out := make(chan string, 1)
	select {
	case hashJobs <- hashJob{data: data, out: out}:
	case <-ctx.Done():
		return "", &TaskError{Err: ctx.Err()}
	}

	select {
	case sum := <-out:
		return sum, nil
	case <-ctx.Done():
		return "", &TaskError{Err: ctx.Err()}
	}
}

// Verify reports whether data hashes to the expected lowercase hex digest.
// The comparison is case-sensitive.
func Verify(ctx context.Context, data []byte, expected string) (bool, error) {
	sum, err := Checksum(ctx, data)
	if err != nil {
		return false, err
	}
	return sum == expected, nil
}
