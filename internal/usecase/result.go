package usecase

import "fmt"

// Result tallies the outcome of one load. Failed counts rows that were
// skipped after an isolated error; they never abort the rest of the load.
type Result struct {
	Processed int
	Inserted  int
	Updated   int
	Failed    int
}

func (r *Result) Add(other Result) {
	r.Processed += other.Processed
	r.Inserted += other.Inserted
	r.Updated += other.Updated
	r.Failed += other.Failed
}

func (r Result) String() string {
	return fmt.Sprintf("processed=%d inserted=%d updated=%d failed=%d", r.Processed, r.Inserted, r.Updated, r.Failed)
}
