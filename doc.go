// Package plainjson implements a self-contained, type-directed JSON codec.
// It converts typed Go values to JSON text and back without building an
// intermediate generic tree and without delegating to another JSON engine.
//
// Components:
//   - Classifier: maps every destination type to exactly one Category.
//   - Primitive table: format/parse functions for scalar leaves
//     (bool, numbers, strings, enums, uuid.UUID, DateTime, time.Time, time.Duration).
//   - Writer: walks a value and emits JSON, omitting null/default members by default.
//   - Reader: single-pass scanner whose cursor is shared by every recursive call
//     of one parse; it consumes exactly what the destination type asks for.
//   - Member resolver: maps member names to struct fields and shapes parsed
//     sequences/maps into the container kind the field declares.
//
// Wire conventions:
//
//	DateTime (KindLocal)        "2024-01-11T14:15:16+05:00"
//	DateTime (KindUnspecified)  "2024-01-11T14:15:16"
//	DateTime (KindUTC)          "2024-01-11T14:15:16Z"
//	time.Duration               "1.02:03:04.0050060"   (d.hh:mm:ss.fffffff)
//	uuid.UUID                   "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//	Tuple2{A, B}                {"Item1":A,"Item2":B}
//
// Reading is lenient: malformed input, type mismatches and unknown members
// degrade to zero values instead of failing. Use Options.Strict (or
// FromJSONStrict) to get a *DecodeError describing the first problem found.
//
// Usage:
//
//	s := plainjson.ToJSON(order)                     // null/default members omitted
//	o := plainjson.FromJSON[Order](s)
//	m := plainjson.FromJSON[map[int]string](`{"1":"A","2":"B"}`)
package plainjson
