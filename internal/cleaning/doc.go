// Package cleaning implements the data cleaning pipeline: column name
// normalization, duplicate elimination, missing value resolution,
// z-score outlier capping and storage type optimization.
//
// A run owns its Table exclusively and executes the five stages
// sequentially, each stage mutating the table in place and threading its
// metrics into the run's CleaningReport. Configuration is validated
// before the first mutation, so a run either completes all stages or
// fails fast with the table untouched.
package cleaning
