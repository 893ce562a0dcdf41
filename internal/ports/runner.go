package ports

import "context"

// Runner invokes the external criticality simulator on a generated input
// deck. The editing core never calls it directly; orchestration lives in
// the CLI layer so the core stays headless.
type Runner interface {
	// Run executes the simulator with the given input deck, writing its
	// output under outputPath, distributed over tasks worker processes.
	// Returns skipped=true without running when the output already
	// exists — the same memoization rule the editors use.
	Run(ctx context.Context, inputPath, outputPath string, tasks int) (skipped bool, err error)
}
