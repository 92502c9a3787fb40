package config

import "errors"

// ErrMissingNamespace indicates a project declaration without a namespace.
var ErrMissingNamespace = errors.New("project namespace is required")

// ErrMissingProjectName indicates a project declaration without a name.
var ErrMissingProjectName = errors.New("project name is required")

// ErrMissingStrategyName indicates a declared strategy without a name.
var ErrMissingStrategyName = errors.New("strategy name is required")

// ErrIncompleteStrategy indicates a declared strategy missing a
// required component (chunker, embedder or store).
var ErrIncompleteStrategy = errors.New("strategy must name chunker, embedder and store")

// ErrMissingDatasetName indicates a dataset declaration without a name.
var ErrMissingDatasetName = errors.New("dataset name is required")

// ErrDuplicateDataset indicates two datasets share a name.
var ErrDuplicateDataset = errors.New("duplicate dataset name")

// ErrMissingFilePath indicates a dataset file entry without a path.
var ErrMissingFilePath = errors.New("file path is required")

// ErrUnknownDataset indicates a dataset lookup by a name the project
// does not declare.
var ErrUnknownDataset = errors.New("unknown dataset")
