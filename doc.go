// Package osti implements OSTI, the Open Standard for Training
// Interoperability: a versioned, FHIR-inspired schema for soccer/football
// training-session plans.
//
// Every entity type E has a shared schema value ESchema and a validating
// constructor ParseE that turns an untyped JSON tree into E, applying
// defaults and aggregating every problem into one schema.Issues report:
//
//	plan, err := osti.ParseSessionPlan(ctx, tree)
//	if iss, ok := schema.AsIssues(err); ok {
//	    for path, list := range iss.ByPath() { ... }
//	}
//
// Raw JSON goes through DecodeSessionPlan or Unmarshal, which additionally
// enforce depth, size and duplicate-key limits. Marshal and MarshalIndent
// emit every declared field in declaration order. JSONSchema exports the
// schema document for SchemaVersion.
package osti
