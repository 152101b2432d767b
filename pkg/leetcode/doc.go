// Package leetcode provides an authenticated client for the parts of the
// LeetCode web API that leetdl reads.
//
// This package includes:
//   - A resty-based client that sends the session cookies and CSRF header
//   - The login check against /api/problems/all/
//   - Paginated listing of accepted submissions via GraphQL
//   - Problem metadata lookup via GraphQL
//   - Source code extraction from submission detail pages
//
// Example usage:
//
//	client := leetcode.NewClient(cfg, log)
//
//	if _, err := client.VerifyLogin(ctx); err != nil {
//	    return err
//	}
//
//	subs, err := client.ListAcceptedSubmissions(ctx)
//	if err != nil {
//	    return err
//	}
//
//	for _, s := range subs {
//	    code, found, err := client.FetchSubmissionCode(ctx, s.ID.String())
//	    // found is false when the page carries no code
//	}
package leetcode
