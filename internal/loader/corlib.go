package loader

// corlibType is a core library type that every module can reference
// without declaring it
type corlibType struct {
	name      string
	valueType bool
}

var corlib = []corlibType{
	{"System.Object", false},
	{"System.String", false},
	{"System.Void", true},
	{"System.Boolean", true},
	{"System.Byte", true},
	{"System.SByte", true},
	{"System.Char", true},
	{"System.Int16", true},
	{"System.UInt16", true},
	{"System.Int32", true},
	{"System.UInt32", true},
	{"System.Int64", true},
	{"System.UInt64", true},
	{"System.Single", true},
	{"System.Double", true},
	{"System.Decimal", true},
	{"System.DateTime", true},
	{"System.DateTimeOffset", true},
	{"System.DateOnly", true},
	{"System.TimeOnly", true},
	{"System.TimeSpan", true},
	{"System.Guid", true},
	{"System.Nullable`1", true},
	{"System.Collections.Generic.IEnumerable`1", false},
	{"System.Collections.Generic.ICollection`1", false},
	{"System.Collections.Generic.IList`1", false},
	{"System.Collections.Generic.IReadOnlyCollection`1", false},
	{"System.Collections.Generic.IReadOnlyList`1", false},
	{"System.Collections.Generic.List`1", false},
	{"System.Collections.Generic.HashSet`1", false},
	{"System.Collections.Generic.IDictionary`2", false},
	{"System.Collections.Generic.Dictionary`2", false},
}
