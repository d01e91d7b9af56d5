package tripload

// ProgressReporter receives a Progress event after every appended batch.
// It is a diagnostic side channel: reporters must not fail the run.
type ProgressReporter interface {
	Report(p Progress)

	// Done is called once after the last batch of a successful run.
	Done(r Result)
}
