// Package dsl provides a fluent builder for dialog trees, aimed at tests,
// examples, and scripted scenes that are easier to express in code than in
// content files.
package dsl
