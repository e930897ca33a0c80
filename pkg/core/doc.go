// Package core defines the shared language of the leapseed system.
//
// This package contains:
//   - Inference entities (PrimitiveType, Relation, ColumnDecision, Model)
//   - Row values (RawRow, Value, Record)
//   - Run ledger entities and the Store interface
//
// The Golden Rule: pkg/core imports ONLY stdlib and yaml.v3 for encoding.
// All other packages depend on core, not the reverse.
package core
