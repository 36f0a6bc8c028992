// Package pdfimport turns broker documents into activities: the buys, sells
// and dividends a portfolio tool needs to build its ledger.
//
// Documents are read as text fragments (see package fragment), one list per
// page, as produced by a PDF text extractor (see package pdftext). Each broker
// is supported by a [Parser] registered under its name:
//   - CanParse decides from the first page if the document belongs to the
//     broker.
//   - Parse rebuilds the activities and reports a [Status].
//
// Activities are plain values: they are created once per detected
// transaction, validated with [Activity.Validate], and never modified
// afterwards. Amounts are exact decimals.
//
// The quirion package implements the Quirin Privatbank documents, and
// registers itself when imported.
package pdfimport
