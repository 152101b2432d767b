// Package storage provides file management for the download tree.
//
// The Manager type owns the output root. It creates problem and language
// directories idempotently and writes README and solution files atomically:
// content goes to a temporary file in the target directory and is renamed
// into place, so an existing file is replaced in one step and a failed write
// leaves the previous content untouched.
//
// Usage:
//
//	manager, err := storage.NewManager(cfg.OutputDir)
//	if err != nil {
//	    return err
//	}
//
//	if _, err := manager.EnsureDir("two-sum", "python3"); err != nil {
//	    return err
//	}
//	_, err = manager.WriteFile([]byte(code), "two-sum", "python3", "solution_1.py")
package storage
