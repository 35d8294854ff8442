package ripping

import (
	"fmt"
	"time"
)

// Job is one title to rip. Index is 1-based.
type Job struct {
	Index    int
	BaseName string
}

// NewJob builds the job for title index.
func NewJob(index int) Job {
	return Job{Index: index, BaseName: fmt.Sprintf("Track_%d", index)}
}

// Jobs returns the contiguous jobs 1..count.
func Jobs(count int) []Job {
	if count <= 0 {
		return nil
	}
	jobs := make([]Job, 0, count)
	for i := 1; i <= count; i++ {
		jobs = append(jobs, NewJob(i))
	}
	return jobs
}

// Result records a completed title.
type Result struct {
	Job     Job
	Path    string
	Size    int64
	Elapsed time.Duration
}

// Summary describes a finished or aborted run.
type Summary struct {
	Device     string
	VolumeName string
	Titles     int
	CacheHit   bool
	Completed  []Result
	Elapsed    time.Duration
}
