// Package validate provides a small combinator library for building
// structured validators. A Validator is a plain function from a value to a
// ValidationResult; combinators compose validators without any reflection.
package validate

import (
	"strconv"

	"github.com/harborline/stowage/structs"
)

// A Validator checks one value and reports every rule it breaks.
type Validator[T any] func(T) structs.ValidationResult

// Rule builds a validator from a predicate. The predicate returning false
// yields a single rule violation at path.
func Rule[T any](path, message string, ok func(T) bool) Validator[T] {
	return func(t T) structs.ValidationResult {
		if ok(t) {
			return structs.Success()
		}
		return structs.Failure(structs.RuleViolation(path, message))
	}
}

// NotEmpty fails when the string is empty.
func NotEmpty(path string) Validator[string] {
	return Rule(path, "must not be empty", func(s string) bool { return s != "" })
}

// EqualTo fails unless the string equals want.
func EqualTo(path, want string) Validator[string] {
	return Rule(path, "must equal "+strconv.Quote(want), func(s string) bool { return s == want })
}

// And runs every validator and merges all failures.
func And[T any](vs ...Validator[T]) Validator[T] {
	return func(t T) structs.ValidationResult {
		result := structs.Success()
		for _, v := range vs {
			result = result.Merge(v(t))
		}
		return result
	}
}

// Or succeeds when any validator succeeds; otherwise the failures of every
// alternative are merged.
func Or[T any](vs ...Validator[T]) Validator[T] {
	return func(t T) structs.ValidationResult {
		result := structs.Success()
		for _, v := range vs {
			r := v(t)
			if r.OK() {
				return structs.Success()
			}
			result = result.Merge(r)
		}
		return result
	}
}

// Field applies a validator to a projection of the value.
func Field[T, F any](get func(T) F, v Validator[F]) Validator[T] {
	return func(t T) structs.ValidationResult {
		return v(get(t))
	}
}

// Each applies a validator to every element of a slice, merging the results.
func Each[T any](v Validator[T]) Validator[[]T] {
	return func(ts []T) structs.ValidationResult {
		result := structs.Success()
		for _, t := range ts {
			result = result.Merge(v(t))
		}
		return result
	}
}

// When applies v only while the predicate holds; otherwise the value passes.
func When[T any](pred func(T) bool, v Validator[T]) Validator[T] {
	return func(t T) structs.ValidationResult {
		if !pred(t) {
			return structs.Success()
		}
		return v(t)
	}
}
