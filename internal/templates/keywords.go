package templates

// KeywordTable maps reflected full type names to their C# keyword spelling
type KeywordTable map[string]string

// DefaultKeywords returns the C# built-in type aliases
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		"System.Void":    "void",
		"System.Object":  "object",
		"System.String":  "string",
		"System.Boolean": "bool",
		"System.Char":    "char",
		"System.Byte":    "byte",
		"System.SByte":   "sbyte",
		"System.Int16":   "short",
		"System.UInt16":  "ushort",
		"System.Int32":   "int",
		"System.UInt32":  "uint",
		"System.Int64":   "long",
		"System.UInt64":  "ulong",
		"System.Single":  "float",
		"System.Double":  "double",
		"System.Decimal": "decimal",
	}
}

// With returns a copy of the table with overrides applied. An empty
// override value removes the entry so the type renders by name.
func (k KeywordTable) With(overrides map[string]string) KeywordTable {
	merged := make(KeywordTable, len(k)+len(overrides))
	for name, keyword := range k {
		merged[name] = keyword
	}
	for name, keyword := range overrides {
		if keyword == "" {
			delete(merged, name)
			continue
		}
		merged[name] = keyword
	}
	return merged
}

// Lookup returns the keyword spelling of fullName, if any
func (k KeywordTable) Lookup(fullName string) (string, bool) {
	keyword, ok := k[fullName]
	return keyword, ok
}

// csharpKeywords are the reserved words that need an @ prefix to be used
// as identifiers
var csharpKeywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "checked": {}, "class": {}, "const": {},
	"continue": {}, "decimal": {}, "default": {}, "delegate": {}, "do": {}, "double": {},
	"else": {}, "enum": {}, "event": {}, "explicit": {}, "extern": {}, "false": {},
	"finally": {}, "fixed": {}, "float": {}, "for": {}, "foreach": {}, "goto": {},
	"if": {}, "implicit": {}, "in": {}, "int": {}, "interface": {}, "internal": {},
	"is": {}, "lock": {}, "long": {}, "namespace": {}, "new": {}, "null": {},
	"object": {}, "operator": {}, "out": {}, "override": {}, "params": {}, "private": {},
	"protected": {}, "public": {}, "readonly": {}, "ref": {}, "return": {}, "sbyte": {},
	"sealed": {}, "short": {}, "sizeof": {}, "stackalloc": {}, "static": {}, "string": {},
	"struct": {}, "switch": {}, "this": {}, "throw": {}, "true": {}, "try": {},
	"typeof": {}, "uint": {}, "ulong": {}, "unchecked": {}, "unsafe": {}, "ushort": {},
	"using": {}, "virtual": {}, "void": {}, "volatile": {}, "while": {},
}

// IsKeyword reports whether name is a reserved C# keyword
func IsKeyword(name string) bool {
	_, ok := csharpKeywords[name]
	return ok
}
