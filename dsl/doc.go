// Package dsl provides a type-safe schema DSL on top of package schema.
//
// Overview
//   - Typed build: ObjectOf[T]().Field(...).Required().Default(...).MustBind()
//     projects wire objects onto struct T, in declaration order.
//   - Primitives: String(), Bool(), Int(), Float(), UUID(), Time(), MapAny().
//   - Closed vocabularies: Enum[E](name, values...).
//   - Composition: Array(elem), Nullable(ad), Lazy(name, fn), Codec(in, c, js).
//   - AnyAdapter: SchemaOf[T](s) embeds any Schema[T] into a builder field.
//
// Parse semantics
//   - Missing required fields report "required" at /field; defaults are
//     parsed through the field schema so they obey the same rules as input.
//   - Child issues are rebased under the parent pointer and aggregated
//     unless schema.ParseOpt.FailFast is set.
//   - Unknown keys follow schema.ParseOpt.UnknownKeys and are dropped by
//     default.
//   - Typed rules registered with Refine run after a structurally valid
//     value has been built.
//
// Encode semantics
//   - Every declared field is emitted, in declaration order, as a
//     *schema.Object; nil pointers become null and nil slices become [].
//   - Values that violate the schema in memory (an enum outside its set, a
//     nil required entity) fail with *schema.SerializationError.
//
// Example
//
//	type Cone struct {
//	    Label string   `json:"label"`
//	    X     *float64 `json:"x"`
//	}
//
//	cone := dsl.ObjectOf[Cone]().
//	    Named("Cone", "A training cone").
//	    Field("label", dsl.StringOf()).Required().
//	    Field("x", dsl.FloatOf().Nullable()).
//	    MustBind()
//	c, err := schema.ParseFrom(ctx, cone, schema.JSONBytes(data))
//
// JSON Schema output
//
//	Named objects and enums become $defs entries when exported through
//	jsonschema.Export. Nullable fields render as anyOf [T, null] with a null
//	default.
package dsl
