package structs

import (
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// Violation is one node of a validation failure tree. A node with no
// Children reports a single broken rule; a node with Children groups the
// failures of one entity (typically an application within a group).
type Violation struct {
	// Path locates the field or entity the violation refers to, relative to
	// the parent violation.
	Path string

	Message string

	Children []Violation
}

// RuleViolation reports a single broken rule at path.
func RuleViolation(path, message string) Violation {
	return Violation{Path: path, Message: message}
}

// GroupViolation groups child violations under one entity.
func GroupViolation(path, message string, children []Violation) Violation {
	return Violation{Path: path, Message: message, Children: children}
}

// IsGroup reports whether v carries nested violations.
func (v Violation) IsGroup() bool { return len(v.Children) > 0 }

func (v Violation) String() string {
	var sb strings.Builder
	v.write(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func (v Violation) write(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%s: %s\n", strings.Repeat("  ", depth), v.Path, v.Message)
	for _, c := range v.Children {
		c.write(sb, depth+1)
	}
}

// leaves flattens the subtree into one error per rule violation, with the
// path chain joined by "/".
func (v Violation) leaves(prefix string) []error {
	path := v.Path
	if prefix != "" {
		path = prefix + "/" + v.Path
	}

	if !v.IsGroup() {
		return []error{fmt.Errorf("%s: %s", path, v.Message)}
	}

	var errs []error
	for _, c := range v.Children {
		errs = append(errs, c.leaves(path)...)
	}
	return errs
}

// ValidationResult is the outcome of a validation pass. The zero value is
// success; any violation makes it a failure. Results are values and are never
// mutated in place.
type ValidationResult struct {
	Violations []Violation
}

// Success returns the passing validation result.
func Success() ValidationResult { return ValidationResult{} }

// Failure returns a failing result carrying the given violations.
func Failure(violations ...Violation) ValidationResult {
	return ValidationResult{Violations: violations}
}

// OK reports whether the validation passed.
func (r ValidationResult) OK() bool { return len(r.Violations) == 0 }

// Merge combines r with other results into a new result. Violation order is
// preserved, r's first.
func (r ValidationResult) Merge(others ...ValidationResult) ValidationResult {
	merged := make([]Violation, 0, len(r.Violations))
	merged = append(merged, r.Violations...)
	for _, o := range others {
		merged = append(merged, o.Violations...)
	}
	if len(merged) == 0 {
		return Success()
	}
	return ValidationResult{Violations: merged}
}

// Messages returns the message of every rule violation in the tree, in
// traversal order. Intended for tests and log output.
func (r ValidationResult) Messages() []string {
	var msgs []string
	var walk func(v Violation)
	walk = func(v Violation) {
		if !v.IsGroup() {
			msgs = append(msgs, v.Message)
			return
		}
		for _, c := range v.Children {
			walk(c)
		}
	}
	for _, v := range r.Violations {
		walk(v)
	}
	return msgs
}

// Err bridges the result into the error-returning world of admission paths:
// nil on success, otherwise a multierror with one error per rule violation.
// The violation tree itself remains the authoritative report.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}

	var mErr *multierror.Error
	for _, v := range r.Violations {
		for _, leaf := range v.leaves("") {
			mErr = multierror.Append(mErr, leaf)
		}
	}
	return mErr.ErrorOrNil()
}
