package pgmgo

// Boundary instantiations for the supported key kinds.

type (
	// SortedListInt32 is a SortedList over 32-bit signed integers.
	SortedListInt32 = SortedList[int32]
	// SortedListUint32 is a SortedList over 32-bit unsigned integers.
	SortedListUint32 = SortedList[uint32]
	// SortedListInt64 is a SortedList over 64-bit signed integers.
	SortedListInt64 = SortedList[int64]
	// SortedListUint64 is a SortedList over 64-bit unsigned integers.
	SortedListUint64 = SortedList[uint64]
	// SortedListFloat32 is a SortedList over 32-bit floats.
	SortedListFloat32 = SortedList[float32]
	// SortedListFloat64 is a SortedList over 64-bit floats.
	SortedListFloat64 = SortedList[float64]

	// SortedSetInt32 is a SortedSet over 32-bit signed integers.
	SortedSetInt32 = SortedSet[int32]
	// SortedSetUint32 is a SortedSet over 32-bit unsigned integers.
	SortedSetUint32 = SortedSet[uint32]
	// SortedSetInt64 is a SortedSet over 64-bit signed integers.
	SortedSetInt64 = SortedSet[int64]
	// SortedSetUint64 is a SortedSet over 64-bit unsigned integers.
	SortedSetUint64 = SortedSet[uint64]
	// SortedSetFloat32 is a SortedSet over 32-bit floats.
	SortedSetFloat32 = SortedSet[float32]
	// SortedSetFloat64 is a SortedSet over 64-bit floats.
	SortedSetFloat64 = SortedSet[float64]
)
