// Package downloader provides the core functionality for mirroring accepted
// LeetCode submissions to disk.
//
// The Downloader struct is the main component. A run:
//   - checks that the session cookies are signed in
//   - lists every accepted submission
//   - groups them by problem and language, newest first
//   - writes <output>/<problem>/README.md from the problem description
//   - writes <output>/<problem>/<lang>/solution_<rank><ext> for every
//     submission whose source could be scraped
//
// The run is strictly sequential. A submission whose source cannot be found
// is skipped and the remaining files keep their rank. Any other failure stops
// the run; if it happens before listing completes, nothing is written.
//
// Usage:
//
//	client := leetcode.NewClient(cfg, log)
//	d := downloader.New(client, cfg, log)
//
//	summary, err := d.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d solutions written\n", summary.Written)
package downloader
