package emitter

// cppKeywords is the full C++20 reserved-word set. An Umbrella
// identifier that collides with one is suffixed with "_" at emission
// time so the generated source still compiles (spec.md §4.3, based on
// the reference compiler's sanitize()).
var cppKeywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "and_eq": true,
	"asm": true, "atomic_cancel": true, "atomic_commit": true, "atomic_noexcept": true,
	"auto": true, "bitand": true, "bitor": true, "bool": true, "break": true,
	"case": true, "catch": true, "char": true, "char8_t": true, "char16_t": true, "char32_t": true,
	"class": true, "compl": true, "concept": true, "const": true, "consteval": true,
	"constexpr": true, "constinit": true,
	"const_cast": true, "continue": true, "co_await": true, "co_return": true,
	"co_yield": true, "decltype": true, "default": true, "delete": true, "do": true,
	"double": true, "dynamic_cast": true, "else": true, "enum": true, "explicit": true,
	"export": true, "extern": true, "false": true, "float": true, "for": true,
	"friend": true, "goto": true, "if": true, "import": true, "inline": true,
	"int": true, "long": true, "module": true, "mutable": true, "namespace": true,
	"new": true, "noexcept": true, "not": true, "not_eq": true, "nullptr": true,
	"operator": true, "or": true, "or_eq": true, "private": true, "protected": true,
	"public": true, "register": true, "reinterpret_cast": true, "requires": true,
	"return": true, "short": true, "signed": true, "sizeof": true, "static": true,
	"static_assert": true, "static_cast": true, "struct": true, "switch": true,
	"synchronized": true, "template": true, "this": true, "thread_local": true,
	"throw": true, "true": true, "try": true, "typedef": true, "typeid": true,
	"typename": true, "union": true, "unsigned": true, "using": true, "virtual": true,
	"void": true, "volatile": true, "wchar_t": true, "while": true, "xor": true,
	"xor_eq": true,
}

// sanitize returns name, suffixed with "_" if it collides with a C++
// reserved word.
func sanitize(name string) string {
	if cppKeywords[name] {
		return name + "_"
	}
	return name
}

// escapeString escapes the characters a C++ string literal cannot
// contain unescaped (spec.md §4.3).
func escapeString(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		case '\r':
			out = append(out, '\\', 'r')
		case '\\':
			out = append(out, '\\', '\\')
		case '"':
			out = append(out, '\\', '"')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// staticNamespaces is the closed set of runtime namespaces whose
// members lower to a `Namespace::member` free-function or constant
// reference instead of an instance member access (spec.md §4.4).
var staticNamespaces = map[string]bool{
	"Math": true, "String": true, "Date": true, "JSON": true,
	"File": true, "Console": true, "HTTP": true, "Regex": true,
	"Env": true, "Thread": true, "Process": true, "Timer": true,
	"Database": true,
}

// stringMethods maps an Umbrella string instance method to the
// runtime::String free function it dispatches to (spec.md §4.4).
var stringMethods = map[string]string{
	"toUpperCase": "toUpperCase",
	"toLowerCase": "toLowerCase",
	"substring":   "substring",
	"indexOf":     "indexOf",
	"replace":     "replace",
	"split":       "split",
	"trim":        "trim",
	"startsWith":  "startsWith",
	"endsWith":    "endsWith",
	"repeat":      "repeat",
	"padStart":    "padStart",
	"padEnd":      "padEnd",
}
