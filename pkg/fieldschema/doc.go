// Package fieldschema declares the public contracts for loading and parsing
// form-field schema documents. Implementations live under internal/fetcher and
// internal/parser; construction helpers sit in the top-level formconfig
// package to prevent import cycles.
package fieldschema
