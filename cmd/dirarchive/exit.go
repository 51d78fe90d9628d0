package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/infracollect/dirarchive/internal/archive"
)

// outcomeExit turns a failed outcome into an exit error whose code is the outcome negated,
// so NotAnArchiveFile (-6) exits with 6.
func outcomeExit(op, path string, outcome archive.Outcome) error {
	if outcome.OK() {
		return nil
	}
	return cli.Exit(fmt.Sprintf("%s %q: %s", op, path, outcome.Err()), -int(outcome))
}
