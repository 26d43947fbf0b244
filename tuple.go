package plainjson

// tuple closes the set of fixed-arity positional types.
type tuple interface{ tupleArity() int }

// Tuple2 is written as {"Item1":…,"Item2":…}; every item is always emitted.
type Tuple2[T1, T2 any] struct {
	Item1 T1
	Item2 T2
}

// Tuple3 is the three-item form of Tuple2.
type Tuple3[T1, T2, T3 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
}

// Tuple4 is the four-item form of Tuple2.
type Tuple4[T1, T2, T3, T4 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
	Item4 T4
}

func (Tuple2[T1, T2]) tupleArity() int         { return 2 }
func (Tuple3[T1, T2, T3]) tupleArity() int     { return 3 }
func (Tuple4[T1, T2, T3, T4]) tupleArity() int { return 4 }

// T2 builds a Tuple2 with the item types inferred.
func T2[A, B any](a A, b B) Tuple2[A, B] {
	return Tuple2[A, B]{Item1: a, Item2: b}
}

// T3 builds a Tuple3.
func T3[A, B, C any](a A, b B, c C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{Item1: a, Item2: b, Item3: c}
}

// T4 builds a Tuple4.
func T4[A, B, C, D any](a A, b B, c C, d D) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{Item1: a, Item2: b, Item3: c, Item4: d}
}
