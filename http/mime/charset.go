package mime

// Charset is a charset label as it's understood by the WHATWG Encoding Standard.
type Charset = string

const (
	UTF8    Charset = "utf-8"
	UTF16LE Charset = "utf-16le"
	CP1251  Charset = "windows-1251"
	CP1252  Charset = "windows-1252"
)
