// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the textile2bbcode
// conversion pipeline: the documents handed to the file stage, the records
// kept in the conversion history, and the configuration of both.
package types

import "time"

// ConversionStatus indicates the outcome of converting one document.
type ConversionStatus string

const (
	ConversionNone      ConversionStatus = "none"
	ConversionConverted ConversionStatus = "converted"
	ConversionFailed    ConversionStatus = "failed"
)

// Document is one Textile input together with the place its BBCode goes.
type Document struct {
	// ID is the input file name without directory or extension (e.g. "README").
	ID string `json:"id" yaml:"id"`

	// InputPath is the Textile source file.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the BBCode destination. Empty means standard output.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
}

// ConversionRecord is what the history keeps about the last conversion of an
// input file.
type ConversionRecord struct {
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Checksum is the hex SHA-256 of the input bytes that were converted.
	Checksum string `json:"checksum" yaml:"checksum"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`

	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	Status ConversionStatus `json:"status" yaml:"status"`
}
